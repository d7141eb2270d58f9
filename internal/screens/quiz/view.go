package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	if len(s.quiz.Questions) == 0 {
		msg := center.Foreground(theme.TextDim).Render("No questions were generated for this quiz.")
		return components.CabinetFrame(msg, width, height)
	}

	q, _ := s.question()
	total := len(s.quiz.Questions)

	var sections []string

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", s.index+1, total),
		float64(s.index+1)/float64(total), false, cw-4)
	sections = append(sections, center.Render(progress.View()))

	sections = append(sections, center.Foreground(theme.Text).Bold(true).Render(q.Text))

	if s.isText() {
		sections = append(sections, components.ArcadeCard(s.input.View(), cw))
	} else {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.mc.View()))
	}

	if q.Answered() {
		sections = append(sections, s.renderFeedback(cw))
	}

	if s.status != "" {
		sections = append(sections, center.Foreground(theme.Error).Render(s.status))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *QuizScreen) renderFeedback(cw int) string {
	q, _ := s.question()

	var b strings.Builder
	if q.Correct() {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Incorrect"))
		b.WriteString("\n")
		answer := ""
		if q.UserAnswer != nil {
			answer = *q.UserAnswer
		}
		b.WriteString(theme.Hint.Render("You answered: ") + answer)
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Correct Answer: ") + q.CorrectAnswer)
	}

	if q.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(q.Explanation))
	}

	next := "Next Question"
	if s.isLast() {
		next = "Finish Quiz"
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		components.ArcadeButton("Ask Tutor for help", false, 22),
		"  ",
		components.ArcadeButton(next, true, 18),
	)

	return components.ArcadeCard(b.String(), cw) + "\n" +
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(buttons)
}
