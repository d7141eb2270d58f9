package history

import (
	"fmt"
	"strings"
	"time"
)

const (
	fallbackQuestion  = "Unknown Question"
	fallbackTitleText = "Question"
	fallbackAnswer    = "No answer provided"
	fallbackQuizTitle = "Generated Quiz"

	solutionTitleRunes = 30
)

// NewSolution builds a solution record, substituting fallbacks for
// missing model output. A missing question titles the record
// "Question...".
func NewSolution(id string, createdAt time.Time, question, answer string, steps []string) *Solution {
	title := SolutionTitle(question)
	if strings.TrimSpace(question) == "" {
		question = fallbackQuestion
		title = SolutionTitle(fallbackTitleText)
	}
	if strings.TrimSpace(answer) == "" {
		answer = fallbackAnswer
	}
	if steps == nil {
		steps = []string{}
	}
	return &Solution{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt,
		Question:  question,
		Answer:    answer,
		Steps:     steps,
	}
}

// SolutionTitle is the first 30 characters of the question followed by
// an ellipsis.
func SolutionTitle(question string) string {
	r := []rune(question)
	if len(r) > solutionTitleRunes {
		r = r[:solutionTitleRunes]
	}
	return string(r) + "..."
}

// NewQuiz builds a quiz record from generated questions. Questions are
// normalised; see NormalizeQuestions.
func NewQuiz(id string, createdAt time.Time, title string, questions []Question) *Quiz {
	if strings.TrimSpace(title) == "" {
		title = fallbackQuizTitle
	}
	return &Quiz{
		ID:        id,
		Title:     title,
		CreatedAt: createdAt,
		Questions: NormalizeQuestions(questions),
	}
}

// freeID returns the first of qN, qN+1, ... not already in seen.
func freeID(seen map[string]bool, n int) string {
	for {
		id := fmt.Sprintf("q%d", n)
		if !seen[id] {
			return id
		}
		n++
	}
}

// NormalizeQuestions repairs generated questions so the player can
// render them: ids are filled in as q1, q2, ...; unknown types become
// short_answer; options are dropped unless the question is mcq; an mcq
// without options degrades to short_answer. Play-time fields are reset.
func NormalizeQuestions(in []Question) []Question {
	out := make([]Question, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, q := range in {
		n := Question{
			ID:            strings.TrimSpace(q.ID),
			Type:          q.Type,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if n.ID == "" || seen[n.ID] {
			n.ID = freeID(seen, i+1)
		}
		seen[n.ID] = true

		switch n.Type {
		case TypeMCQ:
			opts := make([]string, 0, len(q.Options))
			for _, o := range q.Options {
				if strings.TrimSpace(o) != "" {
					opts = append(opts, o)
				}
			}
			if len(opts) == 0 {
				n.Type = TypeShortAnswer
			} else {
				n.Options = opts
			}
		case TypeTrueFalse, TypeShortAnswer:
		default:
			n.Type = TypeShortAnswer
		}
		out = append(out, n)
	}
	return out
}
