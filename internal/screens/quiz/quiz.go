// Package quiz implements the quiz player.
package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/study"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
)

// StatusSaveFailed is shown when an answer could not be persisted.
const StatusSaveFailed = "Couldn't save your answer. Please try again."

var trueFalseOptions = []string{"True", "False"}

// Service records answers against the stored quiz.
type Service interface {
	Answer(ctx context.Context, quizID string, index int, answer string) (*history.Quiz, error)
	Finish(ctx context.Context, quizID string) (*history.Quiz, error)
}

// QuizScreen plays a stored quiz one question at a time. Answers are
// written back as they are given, so a quiz left half way resumes at the
// first unanswered question.
type QuizScreen struct {
	quiz *history.Quiz
	svc  Service

	index  int
	mc     components.MultiChoice
	input  components.TextInput
	status string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a player for quiz.
func New(quiz *history.Quiz, svc Service) *QuizScreen {
	s := &QuizScreen{quiz: quiz.Clone(), svc: svc}
	s.load(firstUnanswered(s.quiz))
	return s
}

func firstUnanswered(q *history.Quiz) int {
	for i, qq := range q.Questions {
		if !qq.Answered() {
			return i
		}
	}
	return 0
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.isText() && !s.answered() {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// load prepares the widgets for question i.
func (s *QuizScreen) load(i int) tea.Cmd {
	s.index = i
	s.status = ""
	q, ok := s.question()
	if !ok {
		return nil
	}

	if opts := options(q); opts != nil {
		correct := -1
		chosen := -1
		for j, o := range opts {
			if correct < 0 && history.AnswerMatches(o, q.CorrectAnswer) {
				correct = j
			}
			if q.UserAnswer != nil && chosen < 0 && history.AnswerMatches(o, *q.UserAnswer) {
				chosen = j
			}
		}
		s.mc = components.NewMultiChoice(opts, correct)
		if q.Answered() {
			s.mc = s.mc.Lock(chosen)
		}
		return nil
	}

	s.input = components.NewTextInput("", "Type your answer...", 0)
	if q.Answered() {
		if q.UserAnswer != nil {
			s.input.SetValue(*q.UserAnswer)
		}
		s.input.Submit(q.Correct())
		return nil
	}
	return s.input.Focus()
}

// options returns the choices for a choice question, or nil for free
// text entry.
func options(q history.Question) []string {
	switch q.Type {
	case history.TypeMCQ:
		return q.Options
	case history.TypeTrueFalse:
		return trueFalseOptions
	}
	return nil
}

func (s *QuizScreen) question() (history.Question, bool) {
	if s.index < 0 || s.index >= len(s.quiz.Questions) {
		return history.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

func (s *QuizScreen) isText() bool {
	q, ok := s.question()
	return ok && options(q) == nil
}

func (s *QuizScreen) answered() bool {
	q, ok := s.question()
	return ok && q.Answered()
}

func (s *QuizScreen) isLast() bool {
	return s.index >= len(s.quiz.Questions)-1
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if len(s.quiz.Questions) == 0 {
		if isKey && kmsg.String() == "enter" {
			return s, s.finish()
		}
		return s, nil
	}

	if s.answered() {
		if !isKey {
			return s, nil
		}
		switch kmsg.String() {
		case "enter", "n", "right":
			if s.isLast() {
				return s, s.finish()
			}
			return s, s.load(s.index + 1)
		case "left", "p":
			if s.index > 0 {
				return s, s.load(s.index - 1)
			}
		case "t":
			q, _ := s.question()
			return s, nav.Cmd(nav.OpenTutorMsg{Seed: study.TutorSeedForQuestion(q)})
		}
		return s, nil
	}

	if s.isText() {
		if isKey && kmsg.String() == "enter" {
			return s, s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s, tea.Batch(cmd, s.submit(s.mc.Chosen()))
	}
	return s, cmd
}

// submit records answer for the current question.
func (s *QuizScreen) submit(answer string) tea.Cmd {
	if s.isText() && answer == "" {
		return nil
	}

	updated, err := s.svc.Answer(context.Background(), s.quiz.ID, s.index, answer)
	if err != nil && !errors.Is(err, history.ErrAlreadyAnswered) {
		s.status = StatusSaveFailed
		if !s.isText() {
			s.mc.Submitted = false
			s.mc.ChosenIndex = -1
		}
		return nil
	}
	if updated != nil {
		s.quiz = updated
	}
	return s.load(s.index)
}

// finish marks the quiz completed and opens the history list.
func (s *QuizScreen) finish() tea.Cmd {
	finished, err := s.svc.Finish(context.Background(), s.quiz.ID)
	if err != nil {
		s.status = StatusSaveFailed
		return nil
	}
	s.quiz = finished
	return nav.Cmd(nav.OpenHistoryMsg{})
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case len(s.quiz.Questions) == 0:
		return []layout.KeyHint{{Key: "Enter", Description: "Finish"}, {Key: "Esc", Description: "Back"}}
	case s.answered():
		next := "Next Question"
		if s.isLast() {
			next = "Finish Quiz"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "←", Description: "Previous"},
			{Key: "T", Description: "Ask Tutor"},
			{Key: "Esc", Description: "Back"},
		}
	case s.isText():
		return []layout.KeyHint{{Key: "Enter", Description: "Check Answer"}, {Key: "Esc", Description: "Back"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Check Answer"},
			{Key: "Esc", Description: "Back"},
		}
	}
}
