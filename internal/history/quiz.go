package history

import (
	"errors"
	"strings"
)

var (
	// ErrAlreadyAnswered is returned when a question already has an answer.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrQuestionIndex is returned for an index outside the quiz.
	ErrQuestionIndex = errors.New("question index out of range")
)

// AnswerMatches compares a learner answer to the expected one,
// ignoring case and surrounding whitespace.
func AnswerMatches(answer, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(correct))
}

// RecordAnswer grades the answer to question index and returns an
// updated copy of quiz. The input quiz is not modified. An answered
// question is left as is and ErrAlreadyAnswered is returned alongside
// an unchanged copy.
func RecordAnswer(quiz *Quiz, index int, answer string) (*Quiz, error) {
	if index < 0 || index >= len(quiz.Questions) {
		return quiz.Clone(), ErrQuestionIndex
	}
	out := quiz.Clone()
	q := &out.Questions[index]
	if q.Answered() {
		return out, ErrAlreadyAnswered
	}

	correct := AnswerMatches(answer, q.CorrectAnswer)
	ans := answer
	q.UserAnswer = &ans
	q.IsCorrect = &correct

	score := Score(out)
	out.Score = &score
	return out, nil
}

// FinishQuiz marks the quiz completed and recomputes the score from the
// per-question flags.
func FinishQuiz(quiz *Quiz) *Quiz {
	out := quiz.Clone()
	out.Completed = true
	score := Score(out)
	out.Score = &score
	return out
}

// Score counts the correctly answered questions.
func Score(quiz *Quiz) int {
	n := 0
	for _, q := range quiz.Questions {
		if q.Correct() {
			n++
		}
	}
	return n
}

// AnsweredCount counts the questions with a recorded answer.
func AnsweredCount(quiz *Quiz) int {
	n := 0
	for _, q := range quiz.Questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// FindByID returns the item with the given id.
func FindByID(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ItemID() == id {
			return it, true
		}
	}
	return nil, false
}
