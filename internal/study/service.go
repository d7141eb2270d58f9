// Package study turns captured input into history records and drives quiz
// play-through against the store.
package study

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/smartstudy/internal/gateway"
	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/llm"
)

// ErrEmptyInput is returned when Process is called with blank text.
var ErrEmptyInput = errors.New("input is empty")

// ErrNotQuiz is returned when a quiz operation targets a solution.
var ErrNotQuiz = errors.New("history item is not a quiz")

// Gateway is the subset of the AI gateway the service needs.
type Gateway interface {
	ExtractText(ctx context.Context, image llm.Image) (string, error)
	ClassifyAndSolve(ctx context.Context, text string, forceQuiz bool) (*gateway.ClassifiedResult, error)
}

// Store persists history records.
type Store interface {
	SaveToHistory(ctx context.Context, item history.Item) error
	UpdateItemInHistory(ctx context.Context, item history.Item) error
	FindItem(ctx context.Context, id string) (history.Item, error)
}

// Config controls how model output is handled.
type Config struct {
	// StrictResponses surfaces malformed model output as an error instead
	// of falling back to an empty quiz.
	StrictResponses bool
}

// Service creates and updates history records.
type Service struct {
	gw     Gateway
	store  Store
	cfg    Config
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the creation time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how record ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a study service.
func NewService(gw Gateway, store Store, cfg Config, opts ...Option) *Service {
	s := &Service{
		gw:     gw,
		store:  store,
		cfg:    cfg,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("study")
	return s
}

// Scan extracts text from an image.
func (s *Service) Scan(ctx context.Context, image llm.Image) (string, error) {
	return s.gw.ExtractText(ctx, image)
}

// Process classifies text, builds the matching history record and saves
// it. The saved record is returned.
func (s *Service) Process(ctx context.Context, text string, forceQuiz bool) (history.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	result, err := s.gw.ClassifyAndSolve(ctx, text, forceQuiz)
	if err != nil {
		var malformed *gateway.MalformedResponseError
		if !errors.As(err, &malformed) || s.cfg.StrictResponses {
			return nil, err
		}
		s.logger.Warn("malformed model response, falling back to empty quiz",
			zap.Error(err), zap.Int("raw_bytes", len(malformed.Raw)))
		result = &gateway.ClassifiedResult{Mode: gateway.ModeQuiz, Quiz: &gateway.QuizData{}}
	}

	item := s.buildItem(result)
	if err := s.store.SaveToHistory(ctx, item); err != nil {
		return nil, fmt.Errorf("save to history: %w", err)
	}
	s.logger.Info("history record created",
		zap.String("id", item.ItemID()), zap.String("kind", string(item.ItemKind())))
	return item, nil
}

func (s *Service) buildItem(result *gateway.ClassifiedResult) history.Item {
	id, created := s.newID(), s.now()
	switch result.Mode {
	case gateway.ModeSingleQuestion:
		data := result.Solution
		if data == nil {
			data = &gateway.SolutionData{}
		}
		return history.NewSolution(id, created, data.Question, data.Answer, data.Steps)
	default:
		data := result.Quiz
		if data == nil {
			data = &gateway.QuizData{}
		}
		return history.NewQuiz(id, created, data.Title, data.Questions)
	}
}

// Answer records an answer for question index of the quiz with quizID
// and writes the quiz back. The updated quiz is returned alongside
// history.ErrAlreadyAnswered when the question was answered before.
func (s *Service) Answer(ctx context.Context, quizID string, index int, answer string) (*history.Quiz, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	updated, err := history.RecordAnswer(quiz, index, answer)
	if err != nil {
		return updated, err
	}
	if err := s.store.UpdateItemInHistory(ctx, updated); err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	return updated, nil
}

// Finish marks the quiz completed with its final score.
func (s *Service) Finish(ctx context.Context, quizID string) (*history.Quiz, error) {
	quiz, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	finished := history.FinishQuiz(quiz)
	if err := s.store.UpdateItemInHistory(ctx, finished); err != nil {
		return nil, fmt.Errorf("update history: %w", err)
	}
	s.logger.Info("quiz finished",
		zap.String("id", quizID), zap.Int("score", *finished.Score), zap.Int("total", len(finished.Questions)))
	return finished, nil
}

func (s *Service) loadQuiz(ctx context.Context, id string) (*history.Quiz, error) {
	item, err := s.store.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	quiz, ok := item.(*history.Quiz)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotQuiz)
	}
	return quiz, nil
}

// TutorSeedForQuestion builds the message sent to the tutor when the user
// asks about a quiz question.
func TutorSeedForQuestion(q history.Question) string {
	return fmt.Sprintf("Can you explain why the answer to \"%s\" is \"%s\"?", q.Text, q.CorrectAnswer)
}

// TutorSeedForSolution builds the message sent to the tutor when the user
// wants more help with a solution.
func TutorSeedForSolution(sol *history.Solution) string {
	return "I need more help understanding this: " + sol.Question
}
