package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/ui/components"
	"github.com/abhisek/dugout/internal/ui/theme"
)

const titleFull = `  ___                       _
 |   \ _  _  __ _  ___  _  _| |_
 | |) | || |/ _' |/ _ \| || |  _|
 |___/ \_,_|\__, |\___/ \_,_|\__|
            |___/`

const titleCompact = "D · U · G · O · U · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

func renderGreeting(player string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("Batter up, " + player + "!")
}

// renderLLMBanner warns that no LLM provider is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No LLM key set: questions come from the rulebook and answers are matched locally")
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View())
}
