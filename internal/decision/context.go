package decision

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/dugout/internal/factgraph"
)

// RankedAction is a recommended action with its rank from the suggests
// edge. Lower ranks come first.
type RankedAction struct {
	Action string `json:"action"`
	Rank   int    `json:"rank"`
}

// Context is the decision context derived for one scenario.
type Context struct {
	Role               string         `json:"position"`
	GameState          string         `json:"game_state"`
	Play               string         `json:"play,omitempty"`
	RecommendedActions []RankedAction `json:"recommended_actions"`
	KeyConcepts        []string       `json:"key_concepts"`
	Explanation        string         `json:"explanation,omitempty"`
}

// HasPlay reports whether a play was found for the game state. A context
// without a play has nothing to ask about.
func (c Context) HasPlay() bool { return c.Play != "" }

// ActionNames returns the recommended actions in rank order.
func (c Context) ActionNames() []string {
	out := make([]string, len(c.RecommendedActions))
	for i, a := range c.RecommendedActions {
		out[i] = a.Action
	}
	return out
}

// RichContext builds the decision context for role in gameState. The first
// triggers edge out of gameState names the play; when there is none the
// returned context has no play and empty collections.
func RichContext(s *factgraph.Store, role, gameState string) Context {
	ctx := Context{
		Role:               role,
		GameState:          gameState,
		RecommendedActions: []RankedAction{},
		KeyConcepts:        []string{},
	}

	for _, e := range s.EdgesFrom(gameState) {
		if e.Predicate == factgraph.Triggers {
			ctx.Play = e.Node
			break
		}
	}
	if !ctx.HasPlay() {
		return ctx
	}

	for _, e := range s.EdgesFrom(ctx.Play) {
		switch e.Predicate {
		case factgraph.Suggests:
			rank, _ := e.Attrs.Int(factgraph.AttrOrder)
			ctx.RecommendedActions = append(ctx.RecommendedActions, RankedAction{Action: e.Node, Rank: rank})
		case factgraph.RequiresUnderstandingOf:
			ctx.KeyConcepts = append(ctx.KeyConcepts, e.Node)
		}
	}
	slices.SortStableFunc(ctx.RecommendedActions, func(a, b RankedAction) int {
		return a.Rank - b.Rank
	})

	if exp, ok := s.NodeAttrs(ctx.Play).String(factgraph.AttrExplanation); ok {
		ctx.Explanation = exp
	}
	return ctx
}

// RelatedKnowledge renders every fact touching role or gameState as
// "subject --[predicate]--> object", in store order.
func RelatedKnowledge(s *factgraph.Store, role, gameState string) []string {
	var out []string
	for _, f := range s.Facts() {
		if f.Subject == role || f.Subject == gameState || f.Object == role || f.Object == gameState {
			out = append(out, fmt.Sprintf("%s --[%s]--> %s", f.Subject, f.Predicate, f.Object))
		}
	}
	return out
}

// JoinKnowledge joins rendered facts into a single line.
func JoinKnowledge(facts []string) string {
	return strings.Join(facts, "; ")
}
