package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗   ██╗ ██████╗  ██████╗ ██╗   ██╗████████╗
 ██╔══██╗██║   ██║██╔════╝ ██╔═══██╗██║   ██║╚══██╔══╝
 ██║  ██║██║   ██║██║  ███╗██║   ██║██║   ██║   ██║
 ██║  ██║██║   ██║██║   ██║██║   ██║██║   ██║   ██║
 ██████╔╝╚██████╔╝╚██████╔╝╚██████╔╝╚██████╔╝   ██║
 ╚═════╝  ╚═════╝  ╚═════╝  ╚═════╝  ╚═════╝    ╚═╝`

const bannerCompact = "D U G O U T"

// RenderBanner returns the DUGOUT banner, compact below 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
