package decision

import (
	"fmt"

	"github.com/abhisek/dugout/internal/factgraph"
)

// rule turns a single fact into a question when it applies to the
// scenario. Rules are independent; every matching rule contributes.
type rule func(f factgraph.Fact, role, gameState string) (string, bool)

var rules = []rule{
	// The role is responsible in this game state.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Subject == role && f.Predicate == factgraph.HasResponsibilityIn && f.Object == gs {
			return fmt.Sprintf("As a %s, what is your responsibility in %s?", role, gs), true
		}
		return "", false
	},
	// The game state triggers a play.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Subject == gs && f.Predicate == factgraph.Triggers {
			return fmt.Sprintf("When it's %s, and the play is '%s', what should the %s do?", gs, f.Object, role), true
		}
		return "", false
	},
	// Something is a bad idea in this game state.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Predicate == factgraph.IsNotRecommended && f.Object == gs {
			return fmt.Sprintf("Why might '%s' not be the best option in %s?", f.Subject, gs), true
		}
		return "", false
	},
	// The role covers a base.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Subject == role && f.Predicate == factgraph.Covers {
			return fmt.Sprintf("Why does the %s cover %s in this situation?", role, f.Object), true
		}
		return "", false
	},
	// The role needs to understand a concept.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Subject == role && f.Predicate == factgraph.RequiresUnderstandingOf {
			return fmt.Sprintf("What does the %s need to understand about '%s'?", role, f.Object), true
		}
		return "", false
	},
	// The game state needs a concept understood.
	func(f factgraph.Fact, role, gs string) (string, bool) {
		if f.Subject == gs && f.Subject != role && f.Predicate == factgraph.RequiresUnderstandingOf {
			return fmt.Sprintf("What do you need to understand about '%s' in the context of %s?", f.Object, gs), true
		}
		return "", false
	},
}

// RuleQuestions applies the rule table to every fact in store order and
// returns all matches. When nothing matches a single generic question is
// returned, so the result is never empty.
func RuleQuestions(s *factgraph.Store, role, gameState string) []string {
	var out []string
	for _, f := range s.Facts() {
		for _, r := range rules {
			if q, ok := r(f, role, gameState); ok {
				out = append(out, q)
			}
		}
	}
	if len(out) == 0 {
		out = append(out, fmt.Sprintf("What should the %s be thinking about in %s?", role, gameState))
	}
	return out
}
