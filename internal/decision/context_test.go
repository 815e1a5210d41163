package decision

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/dugout/internal/factgraph"
)

func TestRichContext_Seed(t *testing.T) {
	got := RichContext(factgraph.Seed(), "Shortstop", "GameState_2outs_Runner1")
	want := Context{
		Role:               "Shortstop",
		GameState:          "GameState_2outs_Runner1",
		Play:               "Grounder to SS",
		RecommendedActions: []RankedAction{{Action: "Throw to 2nd", Rank: 0}},
		KeyConcepts:        []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RichContext mismatch (-want +got):\n%s", diff)
	}
}

func TestRichContext_SortsByRankRegardlessOfInsertion(t *testing.T) {
	b := factgraph.NewBuilder()
	b.AddFact("Pitcher", factgraph.HasResponsibilityIn, "gs", nil)
	b.AddFact("gs", factgraph.Triggers, "Bunt", nil)
	b.AddFact("Bunt", factgraph.Suggests, "third", factgraph.Attrs{factgraph.AttrOrder: 2})
	b.AddFact("Bunt", factgraph.Suggests, "first", factgraph.Attrs{factgraph.AttrOrder: 0})
	b.AddFact("Bunt", factgraph.Suggests, "tie-a", factgraph.Attrs{factgraph.AttrOrder: 1})
	b.AddFact("Bunt", factgraph.Suggests, "tie-b", factgraph.Attrs{factgraph.AttrOrder: 1})
	b.AddFact("Bunt", factgraph.Suggests, "unranked", nil)
	b.AddFact("Bunt", factgraph.RequiresUnderstandingOf, "Footwork", nil)
	b.SetNodeAttr("Bunt", factgraph.AttrExplanation, "Charge it.")
	s := b.Build()

	got := RichContext(s, "Pitcher", "gs")
	wantActions := []string{"first", "unranked", "tie-a", "tie-b", "third"}
	if diff := cmp.Diff(wantActions, got.ActionNames()); diff != "" {
		t.Errorf("action order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Footwork"}, got.KeyConcepts); diff != "" {
		t.Errorf("concepts mismatch (-want +got):\n%s", diff)
	}
	if got.Explanation != "Charge it." {
		t.Errorf("explanation = %q, want %q", got.Explanation, "Charge it.")
	}
}

func TestRichContext_NoPlay(t *testing.T) {
	got := RichContext(factgraph.Seed(), "Shortstop", "GameState_nowhere")
	if got.HasPlay() {
		t.Fatalf("expected no play, got %q", got.Play)
	}
	if len(got.RecommendedActions) != 0 || len(got.KeyConcepts) != 0 {
		t.Errorf("expected empty collections, got %+v", got)
	}
	if got.Explanation != "" {
		t.Errorf("expected no explanation, got %q", got.Explanation)
	}
}

func TestRichContext_ConceptsNotDeduplicated(t *testing.T) {
	s, err := factgraph.FromRecords([]factgraph.ScenarioRecord{
		{Position: "C", GameState: "gs", Play: "p", KeyConcepts: []string{"Force Out", "Tag Up"}},
		{Position: "P", GameState: "gs", Play: "p", KeyConcepts: []string{"Backing Up"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := RichContext(s, "C", "gs")
	want := []string{"Force Out", "Tag Up", "Backing Up"}
	if diff := cmp.Diff(want, got.KeyConcepts); diff != "" {
		t.Errorf("concepts mismatch (-want +got):\n%s", diff)
	}
}

func TestRelatedKnowledge(t *testing.T) {
	got := RelatedKnowledge(factgraph.Seed(), "First Baseman", "GameState_2outs_Runner3")
	want := []string{
		"2 Outs --[isPartOf]--> GameState_2outs_Runner3",
		"First Baseman --[hasResponsibilityIn]--> GameState_2outs_Runner3",
		"GameState_2outs_Runner3 --[triggers]--> Grounder to 1B",
		"Runner on 3rd --[isPartOf]--> GameState_2outs_Runner3",
		"Throw Home --[isNotRecommended]--> GameState_2outs_Runner3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RelatedKnowledge mismatch (-want +got):\n%s", diff)
	}
	joined := JoinKnowledge(got)
	if strings.Count(joined, "; ") != len(want)-1 {
		t.Errorf("JoinKnowledge = %q", joined)
	}
}

func TestPrettyGameState(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2 outs, runner on 1st", "2 outs, Runner on 1st"},
		{"BASES LOADED, no outs", "Bases loaded, No outs"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PrettyGameState(tt.in); got != tt.want {
			t.Errorf("PrettyGameState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDescribeGameState(t *testing.T) {
	s := factgraph.Seed()
	if got, want := DescribeGameState(s, "GameState_2outs_Runner1"), "Runner on 1st, 2 outs"; got != want {
		t.Errorf("DescribeGameState = %q, want %q", got, want)
	}
	if got := DescribeGameState(s, "GameState_Unknown"); got != "GameState_Unknown" {
		t.Errorf("unknown state = %q, want it unchanged", got)
	}
}
