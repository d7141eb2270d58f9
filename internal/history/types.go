package history

import "time"

// Kind discriminates the history item variants on the wire.
type Kind string

const (
	KindQuiz     Kind = "quiz"
	KindSolution Kind = "solution"
)

// Item is a persisted study result: either a *Quiz or a *Solution.
// Consumers switch on the concrete type; the set of variants is closed.
type Item interface {
	ItemID() string
	ItemKind() Kind
	ItemTitle() string
	Created() time.Time

	isItem()
}

// QuestionType enumerates the quiz question formats.
type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "true_false"
	TypeShortAnswer QuestionType = "short_answer"
)

// Question is a single graded quiz item.
type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`

	// Set once, when the learner first answers. Never cleared.
	UserAnswer *string `json:"userAnswer,omitempty"`
	IsCorrect  *bool   `json:"isCorrect,omitempty"`
}

// Answered reports whether the learner has submitted an answer.
func (q Question) Answered() bool {
	return q.IsCorrect != nil
}

// Correct reports whether the question was answered correctly.
func (q Question) Correct() bool {
	return q.IsCorrect != nil && *q.IsCorrect
}

// Quiz is a generated set of questions plus play-through state.
type Quiz struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Questions []Question
	Completed bool

	// Score is nil until the first answer is recorded.
	Score *int
}

func (q *Quiz) ItemID() string     { return q.ID }
func (q *Quiz) ItemKind() Kind     { return KindQuiz }
func (q *Quiz) ItemTitle() string  { return q.Title }
func (q *Quiz) Created() time.Time { return q.CreatedAt }
func (q *Quiz) isItem()            {}

// Clone returns a deep copy so callers can mutate without aliasing the
// stored record.
func (q *Quiz) Clone() *Quiz {
	c := *q
	c.Questions = make([]Question, len(q.Questions))
	for i, qq := range q.Questions {
		c.Questions[i] = qq.clone()
	}
	if q.Score != nil {
		s := *q.Score
		c.Score = &s
	}
	return &c
}

func (q Question) clone() Question {
	c := q
	if q.Options != nil {
		c.Options = append([]string(nil), q.Options...)
	}
	if q.UserAnswer != nil {
		a := *q.UserAnswer
		c.UserAnswer = &a
	}
	if q.IsCorrect != nil {
		b := *q.IsCorrect
		c.IsCorrect = &b
	}
	return c
}

// Solution is a direct answer to a single question.
type Solution struct {
	ID        string
	Title     string
	CreatedAt time.Time
	Question  string
	Answer    string
	Steps     []string
}

func (s *Solution) ItemID() string     { return s.ID }
func (s *Solution) ItemKind() Kind     { return KindSolution }
func (s *Solution) ItemTitle() string  { return s.Title }
func (s *Solution) Created() time.Time { return s.CreatedAt }
func (s *Solution) isItem()            {}

var (
	_ Item = (*Quiz)(nil)
	_ Item = (*Solution)(nil)
)
