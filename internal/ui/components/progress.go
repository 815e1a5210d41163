package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/ui/theme"
)

// Diamonds renders n slots with filled marking how many are used, e.g.
// outs or strikes: "● ● ○".
func Diamonds(label string, filled, n int, fill lipgloss.Style) string {
	parts := make([]string, n)
	for i := range n {
		if i < filled {
			parts[i] = fill.Render("●")
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) + " " + strings.Join(parts, " ")
}

// InningBar renders the game's progress through its innings.
func InningBar(inning, innings, width int) string {
	barWidth := max(width, 4)
	filled := min(max(barWidth*(inning-1)/max(innings, 1), 0), barWidth)

	return lipgloss.NewStyle().Background(theme.Primary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
}
