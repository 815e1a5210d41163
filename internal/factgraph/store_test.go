package factgraph

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestSeed_ResponsibilityPairsAreRealEdges(t *testing.T) {
	s := Seed()
	rng := rand.New(rand.NewPCG(1, 2))

	for range 200 {
		sc, err := s.RandomResponsibilityPair(rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		found := false
		for _, e := range s.EdgesFrom(sc.Role) {
			if e.Predicate == HasResponsibilityIn && e.Node == sc.GameState {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("pair %+v has no hasResponsibilityIn edge", sc)
		}
	}
}

func TestRandomResponsibilityPair_CoversAllPairs(t *testing.T) {
	s := Seed()
	rng := rand.New(rand.NewPCG(7, 7))

	seen := make(map[Scenario]bool)
	for range 500 {
		sc, err := s.RandomResponsibilityPair(rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[sc] = true
	}
	if len(seen) != len(s.Scenarios()) {
		t.Errorf("sampled %d distinct pairs, want %d", len(seen), len(s.Scenarios()))
	}
}

func TestRandomResponsibilityPair_EmptyStore(t *testing.T) {
	s := NewBuilder().Build()
	_, err := s.RandomResponsibilityPair(nil)
	if !errors.Is(err, ErrEmptyStore) {
		t.Fatalf("got %v, want ErrEmptyStore", err)
	}
}

func TestSeed_Scenarios(t *testing.T) {
	got := Seed().Scenarios()
	want := []Scenario{
		{"Shortstop", "GameState_2outs_Runner1"},
		{"Shortstop", "GameState_0outs_Runners12"},
		{"Third Base", "GameState_1out_Runner2"},
		{"Second Baseman", "GameState_0outs_Runners12"},
		{"First Baseman", "GameState_2outs_Runner3"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d scenarios, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scenario[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSeed_OneTriggerPerGameState(t *testing.T) {
	if err := CheckTriggers(Seed()); err != nil {
		t.Fatal(err)
	}
}

func TestAddFact_DuplicateMergesAttrs(t *testing.T) {
	b := NewBuilder()
	b.AddFact("a", Suggests, "b", Attrs{AttrSource: "x"})
	b.AddFact("a", Suggests, "b", Attrs{AttrOrder: 2})
	s := b.Build()

	edges := s.EdgesFrom("a")
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if src, _ := edges[0].Attrs.String(AttrSource); src != "x" {
		t.Errorf("source = %q, want %q", src, "x")
	}
	if ord, _ := edges[0].Attrs.Int(AttrOrder); ord != 2 {
		t.Errorf("order = %d, want 2", ord)
	}
}

func TestEdgesTo(t *testing.T) {
	s := Seed()
	in := s.EdgesTo("Force Out")
	if len(in) != 2 {
		t.Fatalf("got %d incoming edges, want 2", len(in))
	}
	if in[0].Node != "Throw to 2nd" || in[0].Predicate != RequiresUnderstandingOf {
		t.Errorf("first incoming = %+v", in[0])
	}
	if in[1].Node != "Throw Home" || in[1].Predicate != FailsToResultIn {
		t.Errorf("second incoming = %+v", in[1])
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	b := NewBuilder()
	b.AddFact("a", Suggests, "b", Attrs{AttrOrder: 1})
	b.SetNodeAttr("b", AttrExplanation, "why")
	s := b.Build()

	s.EdgesFrom("a")[0].Attrs[AttrOrder] = 99
	s.NodeAttrs("b")[AttrExplanation] = "changed"

	if ord, _ := s.EdgesFrom("a")[0].Attrs.Int(AttrOrder); ord != 1 {
		t.Errorf("order = %d after caller mutation, want 1", ord)
	}
	if exp, _ := s.NodeAttrs("b").String(AttrExplanation); exp != "why" {
		t.Errorf("explanation = %q after caller mutation, want %q", exp, "why")
	}
}

func TestFacts_IterationOrder(t *testing.T) {
	b := NewBuilder()
	b.AddFact("x", LeadsTo, "y", nil)
	b.AddFact("y", LeadsTo, "z", nil)
	b.AddFact("x", Covers, "z", nil)
	s := b.Build()

	facts := s.Facts()
	want := []string{"x-leadsTo-y", "x-covers-z", "y-leadsTo-z"}
	for i, f := range facts {
		got := f.Subject + "-" + string(f.Predicate) + "-" + f.Object
		if got != want[i] {
			t.Errorf("fact[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestPredicate_Valid(t *testing.T) {
	for _, p := range AllPredicates() {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Predicate("hates").Valid() {
		t.Error("unknown predicate reported valid")
	}
}

func TestBuild_BuilderStaysUsable(t *testing.T) {
	b := NewBuilder()
	b.AddFact("Shortstop", HasResponsibilityIn, "gs1", Attrs{AttrSource: "seed"})
	b.SetNodeAttr("Play", AttrExplanation, "first")
	first := b.Build()

	b.AddFact("Catcher", HasResponsibilityIn, "gs2", nil)
	b.AddFact("Shortstop", HasResponsibilityIn, "gs1", Attrs{AttrSource: "file"})
	b.SetNodeAttr("Play", AttrExplanation, "second")
	second := b.Build()

	if first.Len() != 1 {
		t.Fatalf("first.Len() = %d, want 1", first.Len())
	}
	if second.Len() != 2 {
		t.Fatalf("second.Len() = %d, want 2", second.Len())
	}
	if got := first.EdgesFrom("Shortstop")[0].Attrs[AttrSource]; got != "seed" {
		t.Errorf("first source = %v, want seed", got)
	}
	if got, _ := first.NodeAttrs("Play").String(AttrExplanation); got != "first" {
		t.Errorf("first explanation = %q, want first", got)
	}
	if got, _ := second.NodeAttrs("Play").String(AttrExplanation); got != "second" {
		t.Errorf("second explanation = %q, want second", got)
	}
}
