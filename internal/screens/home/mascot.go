package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle MascotVariant = iota
	MascotPro                // Gold crown for subscribers
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ∑ ? │
└─────┘`

const mascotPro = `  ♛
┌─────┐
│ ★ ★ │
│  ▿  │
│ ∑ ✓ │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	if v == MascotPro {
		art, fg = mascotPro, theme.ArcadeYellow
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
