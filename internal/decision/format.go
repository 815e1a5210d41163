package decision

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/dugout/internal/factgraph"
)

// PrettyGameState capitalizes the first letter of each comma-separated
// segment and lowercases the rest, e.g. "2 OUTS, runner on 1st" becomes
// "2 outs, Runner on 1st".
func PrettyGameState(gs string) string {
	parts := strings.Split(gs, ", ")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	// Casers carry state, so each call gets its own.
	return cases.Upper(language.English).String(string(r[:1])) +
		cases.Lower(language.English).String(string(r[1:]))
}

// DescribeGameState renders gameState from the facts that are part of it,
// e.g. "Runner on 1st, 2 outs". A state with no parts is returned as-is.
func DescribeGameState(s *factgraph.Store, gameState string) string {
	var parts []string
	for _, e := range s.EdgesTo(gameState) {
		if e.Predicate == factgraph.IsPartOf {
			parts = append(parts, e.Node)
		}
	}
	if len(parts) == 0 {
		return gameState
	}
	return PrettyGameState(strings.Join(parts, ", "))
}
