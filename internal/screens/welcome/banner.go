package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const bannerArt = `
 ╔═╗╔╦╗╔═╗╦═╗╔╦╗  ╔═╗╔╦╗╦ ╦╔╦╗╦ ╦
 ╚═╗║║║╠═╣╠╦╝ ║   ╚═╗ ║ ║ ║ ║║╚╦╝
 ╚═╝╩ ╩╩ ╩╩╚═ ╩   ╚═╝ ╩ ╚═╝═╩╝ ╩ `

const bannerCompact = "S M A R T S T U D Y"

// RenderBanner returns the SmartStudy banner in the primary colour.
// Terminals narrower than 40 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
