package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const arcadeTitleFull = `╔═╗╔╦╗╔═╗╦═╗╔╦╗  ╔═╗╔╦╗╦ ╦╔╦╗╦ ╦
╚═╗║║║╠═╣╠╦╝ ║   ╚═╗ ║ ║ ║ ║║╚╦╝
╚═╝╩ ╩╩ ╩╩╚═ ╩   ╚═╝ ╩ ╚═╝═╩╝ ╩ `

const arcadeTitleCompact = "S M A R T S T U D Y"

const tagline = "Snap, Type, or Speak.\nWe'll handle the homework."

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return components.ContentWidth(frameWidth)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

func renderTagline(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(tagline)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a warning banner when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set GEMINI_API_KEY to enable AI features (see smartstudy --help)")
}

// renderFooterLine shows the pro teaser, or the saved item count for
// subscribers.
func renderFooterLine(st Status, cw int) string {
	style := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	if !st.Pro {
		return style.Foreground(theme.Primary).Bold(true).Render("Get Unlimited Access →")
	}
	return style.Foreground(theme.TextDim).Render(fmt.Sprintf("%d saved in history", st.HistoryCount))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(pro bool, cw int) string {
	variant := MascotIdle
	if pro {
		variant = MascotPro
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return components.CabinetFrame(content, width, height)
}
