package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Mode selects a palette.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Palette is a full set of UI colors.
type Palette struct {
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	Bg           color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
}

// DarkPalette is calm indigo on deep navy.
var DarkPalette = Palette{
	Primary:      lipgloss.Color("#818CF8"), // Indigo
	Secondary:    lipgloss.Color("#F472B6"), // Pink
	Accent:       lipgloss.Color("#F97316"), // Orange
	Success:      lipgloss.Color("#22C55E"), // Green
	Error:        lipgloss.Color("#F43F5E"), // Rose
	Text:         lipgloss.Color("#F8FAFC"), // White
	TextDim:      lipgloss.Color("#94A3B8"), // Slate
	Bg:           lipgloss.Color("#0F172A"), // Deep Navy
	BgCard:       lipgloss.Color("#1E293B"), // Dark Slate
	Border:       lipgloss.Color("#334155"), // Slate
	ArcadeYellow: lipgloss.Color("#FACC15"),
	ArcadeCyan:   lipgloss.Color("#22D3EE"),
}

// LightPalette is indigo on white.
var LightPalette = Palette{
	Primary:      lipgloss.Color("#4F46E5"),
	Secondary:    lipgloss.Color("#DB2777"),
	Accent:       lipgloss.Color("#EA580C"),
	Success:      lipgloss.Color("#16A34A"),
	Error:        lipgloss.Color("#DC2626"),
	Text:         lipgloss.Color("#111827"),
	TextDim:      lipgloss.Color("#6B7280"),
	Bg:           lipgloss.Color("#FFFFFF"),
	BgCard:       lipgloss.Color("#EEF2FF"),
	Border:       lipgloss.Color("#D1D5DB"),
	ArcadeYellow: lipgloss.Color("#CA8A04"),
	ArcadeCyan:   lipgloss.Color("#0891B2"),
}

// Active colors. Views read these at render time, so Apply takes effect
// on the next frame.
var (
	Primary      color.Color
	Secondary    color.Color
	Accent       color.Color
	Success      color.Color
	Error        color.Color
	Text         color.Color
	TextDim      color.Color
	BgDark       color.Color
	BgCard       color.Color
	Border       color.Color
	ArcadeYellow color.Color
	ArcadeCyan   color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current = Light

func init() {
	Apply(Light)
}

// Current returns the active mode.
func Current() Mode {
	return current
}

// Apply switches the active palette. Unknown modes fall back to light.
func Apply(m Mode) {
	p := LightPalette
	if m == Dark {
		p = DarkPalette
	} else {
		m = Light
	}
	current = m

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.Bg, p.BgCard, p.Border
	ArcadeYellow, ArcadeCyan = p.ArcadeYellow, p.ArcadeCyan

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
