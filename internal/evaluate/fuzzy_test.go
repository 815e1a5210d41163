package evaluate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchAnswer_ExactIgnoringCase(t *testing.T) {
	m := MatchAnswer("  throw to 2nd ", []string{"Throw to 2nd"})
	if !m.IsCorrect {
		t.Fatal("expected exact match to be correct")
	}
	if m.Score != 1.0 {
		t.Errorf("score = %f, want 1.0", m.Score)
	}
	if m.BestMatch != "Throw to 2nd" {
		t.Errorf("best match = %q", m.BestMatch)
	}
}

func TestMatchAnswer_Unrelated(t *testing.T) {
	m := MatchAnswer("xyzzy", []string{"Throw to 2nd"})
	if m.IsCorrect {
		t.Fatal("unrelated answer should not be correct")
	}
	if m.Score >= CorrectThreshold {
		t.Errorf("score = %f, want < %f", m.Score, CorrectThreshold)
	}
}

func TestMatchAnswer_NoCandidates(t *testing.T) {
	got := MatchAnswer("anything", nil)
	want := Match{AllMatches: []Candidate{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("MatchAnswer mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchAnswer_ScoresEveryCandidate(t *testing.T) {
	m := MatchAnswer("throw to 2nd", []string{"Cover 2nd", "Throw to 2nd", "Throw to 1st"})
	if m.BestMatch != "Throw to 2nd" {
		t.Fatalf("best match = %q, want Throw to 2nd", m.BestMatch)
	}
	if len(m.AllMatches) != 3 {
		t.Fatalf("expected 3 scored candidates, got %d", len(m.AllMatches))
	}
	for i, want := range []string{"Cover 2nd", "Throw to 2nd", "Throw to 1st"} {
		if m.AllMatches[i].Action != want {
			t.Errorf("AllMatches[%d] = %q, want %q", i, m.AllMatches[i].Action, want)
		}
	}
}

func TestMatchAnswer_FirstCandidateWinsTies(t *testing.T) {
	m := MatchAnswer("", []string{"Cut", "Tag"})
	if m.BestMatch != "Cut" {
		t.Fatalf("best match = %q, want first candidate", m.BestMatch)
	}
}

func TestFuzzyEvaluator_Verdicts(t *testing.T) {
	actions := []string{"Throw to 2nd"}
	tests := []struct {
		answer string
		want   Verdict
	}{
		{"throw to 2nd", VerdictCorrect},
		{"throw", VerdictPartial},
		{"xyzzy", VerdictIncorrect},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			res, err := FuzzyEvaluator{}.Evaluate(context.Background(), Input{Answer: tt.answer, RecommendedActions: actions})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Verdict != tt.want {
				t.Errorf("verdict = %q, want %q (score %f)", res.Verdict, tt.want, res.Score)
			}
			if res.Feedback == "" {
				t.Error("expected feedback")
			}
		})
	}
}

func TestFuzzyEvaluator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (FuzzyEvaluator{}).Evaluate(ctx, Input{}); err == nil {
		t.Fatal("expected context error")
	}
}
