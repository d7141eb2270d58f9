package input

import (
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const actionButtonWidth = 20

func (s *InputScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.heading()))

	if s.hasSource() {
		sections = append(sections, components.ArcadeCard(s.source.View(), cw))
	}
	sections = append(sections, components.ArcadeCard(s.text.View(), cw))

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		components.ArcadeButton("Get Answer", s.focus == focusSolve, actionButtonWidth),
		"  ",
		components.ArcadeButton("Generate Quiz", s.focus == focusQuiz, actionButtonWidth),
	)
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(buttons))

	if s.status != "" {
		fg := theme.Secondary
		if s.isError {
			fg = theme.Error
		}
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(fg).
			Render(s.status))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *InputScreen) heading() string {
	switch s.mode {
	case nav.ModeCamera:
		if s.extracted {
			return "Review the scanned text"
		}
		return "Scan a photo of your homework"
	case nav.ModeVoice:
		if s.listening() {
			return "● Listening..."
		}
		return "Transcribe a spoken question"
	default:
		return "Type your question"
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
