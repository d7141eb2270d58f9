package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector component.
type MultiChoice struct {
	Options      []string
	CorrectIndex int // -1 when no option matches the expected answer
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Lock marks the component as already answered with the given choice.
func (m MultiChoice) Lock(chosen int) MultiChoice {
	m.Submitted = true
	m.ChosenIndex = chosen
	if chosen >= 0 {
		m.Selected = chosen
	}
	return m
}

// Update handles keyboard navigation and selection. Letter keys pick
// an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 {
			if i := int(key[0] - 'a'); key[0] >= 'a' && i < len(m.Options) {
				m.Selected = i
				m.Submitted = true
				m.ChosenIndex = i
			}
		}
	}

	return m, nil
}

// Chosen returns the chosen option text.
func (m MultiChoice) Chosen() string {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// View renders the options.
func (m MultiChoice) View() string {
	var s string
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
