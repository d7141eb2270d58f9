// Package gateway wraps the generative model behind the three requests
// SmartStudy makes: OCR, classify-and-solve, and tutor chat.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/llm"
)

// NoTextFound is returned by ExtractText when the model finds nothing.
const NoTextFound = "No text found."

const defaultImageMIME = "image/jpeg"

const (
	ocrMaxTokens      = 4096
	classifyMaxTokens = 8192
	chatMaxTokens     = 1024
)

// Mode is the classification outcome.
type Mode string

const (
	ModeSingleQuestion Mode = "single_question"
	ModeQuiz           Mode = "quiz"
)

// SolutionData is the model's answer to a single question. Fields may
// be empty; fallbacks are applied when building the history record.
type SolutionData struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Steps    []string `json:"steps"`
}

// QuizData is a generated quiz.
type QuizData struct {
	Title     string             `json:"title"`
	Questions []history.Question `json:"questions"`
}

// ClassifiedResult is the parsed response of ClassifyAndSolve. Exactly
// one of Solution and Quiz is set, matching Mode.
type ClassifiedResult struct {
	Mode     Mode
	Solution *SolutionData
	Quiz     *QuizData
}

// ChatTurn is one prior message replayed to the tutor.
type ChatTurn struct {
	Role llm.Role
	Text string
}

// Gateway issues requests to the model. It holds no conversation state.
type Gateway struct {
	provider llm.Provider
	logger   *zap.Logger
}

// New creates a Gateway over provider.
func New(provider llm.Provider, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{provider: provider, logger: logger.Named("gateway")}
}

// ExtractText runs OCR on image and returns the text verbatim, or
// NoTextFound when the model returns nothing.
func (g *Gateway) ExtractText(ctx context.Context, image llm.Image) (string, error) {
	if image.MIMEType == "" {
		image.MIMEType = defaultImageMIME
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "ocr"), llm.Request{
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: ocrInstruction,
			Images:  []llm.Image{image},
		}},
		MaxTokens: ocrMaxTokens,
	})
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	text := string(resp.Content)
	if strings.TrimSpace(text) == "" {
		return NoTextFound, nil
	}
	return text, nil
}

// ClassifyAndSolve asks the model whether text is a single question or
// quiz material and returns the generated content. With forceQuiz set the
// model is instructed to always produce a quiz.
func (g *Gateway) ClassifyAndSolve(ctx context.Context, text string, forceQuiz bool) (*ClassifiedResult, error) {
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "classify"), llm.Request{
		System: classifySystemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: classifyUserMessage(text, forceQuiz),
		}},
		Schema:    classifySchema,
		MaxTokens: classifyMaxTokens,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return nil, &MalformedResponseError{
				Raw: string(llm.StripCodeFences(invalid.Content)),
				Err: invalid.Err,
			}
		}
		return nil, &ProcessingError{Err: err}
	}

	result, err := ParseClassified(resp.Content)
	if err != nil {
		g.logger.Warn("unparseable classification", zap.Error(err), zap.Int("bytes", len(resp.Content)))
		return nil, err
	}
	g.logger.Debug("classified input", zap.String("mode", string(result.Mode)), zap.Bool("force_quiz", forceQuiz))
	return result, nil
}

type classifiedWire struct {
	Mode Mode            `json:"mode"`
	Data json.RawMessage `json:"data"`
}

// ParseClassified strictly parses a classification response. Code
// fences are stripped first. A missing data object yields empty data.
func ParseClassified(raw []byte) (*ClassifiedResult, error) {
	cleaned := llm.StripCodeFences(raw)
	malformed := func(err error) error {
		return &MalformedResponseError{Raw: string(cleaned), Err: err}
	}

	var w classifiedWire
	if err := json.Unmarshal(cleaned, &w); err != nil {
		return nil, malformed(fmt.Errorf("invalid JSON: %w", err))
	}

	data := w.Data
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage(`{}`)
	}

	switch w.Mode {
	case ModeSingleQuestion:
		var s SolutionData
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, malformed(fmt.Errorf("solution data: %w", err))
		}
		return &ClassifiedResult{Mode: w.Mode, Solution: &s}, nil
	case ModeQuiz:
		var q QuizData
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, malformed(fmt.Errorf("quiz data: %w", err))
		}
		return &ClassifiedResult{Mode: w.Mode, Quiz: &q}, nil
	default:
		return nil, malformed(fmt.Errorf("unknown mode %q", w.Mode))
	}
}

// Chat sends newMessage to the tutor after replaying history, and
// returns the reply text. An empty reply is returned as is.
func (g *Gateway) Chat(ctx context.Context, turns []ChatTurn, newMessage string) (string, error) {
	msgs := make([]llm.Message, 0, len(turns)+1)
	for _, t := range turns {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: newMessage})

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, "tutor"), llm.Request{
		System:    tutorPersona,
		Messages:  msgs,
		MaxTokens: chatMaxTokens,
	})
	if err != nil {
		return "", &ChatError{Err: err}
	}
	return string(resp.Content), nil
}
