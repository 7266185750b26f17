package splash

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edudesign/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗██████╗ ███████╗███████╗██╗ ██████╗ ███╗   ██╗
 ██╔════╝██╔══██╗██║   ██║██╔══██╗██╔════╝██╔════╝██║██╔════╝ ████╗  ██║
 █████╗  ██║  ██║██║   ██║██║  ██║█████╗  ███████╗██║██║  ███╗██╔██╗ ██║
 ██╔══╝  ██║  ██║██║   ██║██║  ██║██╔══╝  ╚════██║██║██║   ██║██║╚██╗██║
 ███████╗██████╔╝╚██████╔╝██████╔╝███████╗███████║██║╚██████╔╝██║ ╚████║
 ╚══════╝╚═════╝  ╚═════╝ ╚═════╝ ╚══════╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝`

const bannerCompact = "E D U D E S I G N"

// RenderBanner returns the banner in the primary color, falling back to
// spaced letters below 76 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 76 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
