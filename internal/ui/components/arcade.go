package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// ScoreboardFrame wraps content in a double border, centered within the
// given dimensions.
func ScoreboardFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
