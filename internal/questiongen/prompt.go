package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/dugout/internal/decision"
)

const systemPrompt = "You're a smart, friendly youth baseball coach. " +
	"You ask kids thoughtful questions to help them understand plays. " +
	"Use the context to ask a clear, age-appropriate question that encourages reasoning."

// buildUserMessage renders the decision context for the prompt.
func buildUserMessage(dc decision.Context) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The player is a %s in the situation: %s.\n", dc.Role, dc.GameState)
	fmt.Fprintf(&b, "The play is: %s.\n", dc.Play)

	b.WriteString("\nRecommended actions (in order):\n")
	b.WriteString(strings.Join(dc.ActionNames(), ", "))

	b.WriteString("\n\nKey concepts:\n")
	b.WriteString(strings.Join(dc.KeyConcepts, ", "))

	b.WriteString("\n\nExplanation of the play:\n")
	if dc.Explanation != "" {
		b.WriteString(dc.Explanation)
	} else {
		b.WriteString("No explanation available.")
	}

	b.WriteString("\n\nAsk one thoughtful, age-appropriate Socratic question to guide the player's decision-making.")
	return b.String()
}
