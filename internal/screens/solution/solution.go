// Package solution renders a stored solution with its worked steps.
package solution

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/study"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const noSteps = "No detailed steps provided."

// SolutionScreen shows the question, final answer and steps.
type SolutionScreen struct {
	sol    *history.Solution
	offset int
}

var _ screen.Screen = (*SolutionScreen)(nil)
var _ screen.KeyHintProvider = (*SolutionScreen)(nil)

// New creates a viewer for sol.
func New(sol *history.Solution) *SolutionScreen {
	return &SolutionScreen{sol: sol}
}

func (s *SolutionScreen) Init() tea.Cmd {
	return nil
}

func (s *SolutionScreen) Title() string {
	return "Solution"
}

func (s *SolutionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "e", "t":
		return s, nav.Cmd(nav.OpenTutorMsg{Seed: study.TutorSeedForSolution(s.sol)})
	case "down", "j":
		if s.offset < len(s.sol.Steps)-1 {
			s.offset++
		}
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	}
	return s, nil
}

func (s *SolutionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll steps"},
		{Key: "Enter", Description: "Explain More"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SolutionScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)

	var sections []string
	sections = append(sections, components.ArcadeCard(
		label.Render("Question")+"\n"+theme.Body.Render(s.sol.Question), cw))

	sections = append(sections, components.ArcadeCard(
		label.Render("Final Answer")+"\n"+
			lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(s.sol.Answer), cw))

	sections = append(sections, components.ArcadeCard(
		label.Render("Step-by-Step")+"\n"+s.renderSteps(), cw))

	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(components.ArcadeButton("Explain More", true, 20)))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *SolutionScreen) renderSteps() string {
	if len(s.sol.Steps) == 0 {
		return theme.Hint.Render(noSteps)
	}
	var lines []string
	for i := s.offset; i < len(s.sol.Steps); i++ {
		num := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d.", i+1))
		lines = append(lines, num+" "+theme.Body.Render(s.sol.Steps[i]))
	}
	return strings.Join(lines, "\n")
}
