package history

import (
	"errors"
	"testing"
	"time"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		ID:        "quiz-1",
		Title:     "Photosynthesis",
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Questions: []Question{
			{ID: "q1", Type: TypeMCQ, Text: "Gas absorbed?", Options: []string{"O2", "CO2"}, CorrectAnswer: "CO2"},
			{ID: "q2", Type: TypeTrueFalse, Text: "Plants need light.", CorrectAnswer: "True"},
			{ID: "q3", Type: TypeShortAnswer, Text: "Green pigment?", CorrectAnswer: "Chlorophyll"},
		},
	}
}

func TestRecordAnswer_CaseInsensitiveTrimmed(t *testing.T) {
	quiz := sampleQuiz()
	got, err := RecordAnswer(quiz, 2, "  chlorophyll ")
	if err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	q := got.Questions[2]
	if !q.Correct() {
		t.Error("expected answer to be graded correct")
	}
	if q.UserAnswer == nil || *q.UserAnswer != "  chlorophyll " {
		t.Errorf("UserAnswer = %v, want raw input kept", q.UserAnswer)
	}
	if got.Score == nil || *got.Score != 1 {
		t.Errorf("Score = %v, want 1", got.Score)
	}
}

func TestRecordAnswer_DoesNotMutateInput(t *testing.T) {
	quiz := sampleQuiz()
	if _, err := RecordAnswer(quiz, 0, "CO2"); err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	if quiz.Questions[0].Answered() {
		t.Error("input quiz was mutated")
	}
	if quiz.Score != nil {
		t.Error("input quiz score was set")
	}
}

func TestRecordAnswer_OnlyTouchesTargetQuestion(t *testing.T) {
	got, err := RecordAnswer(sampleQuiz(), 1, "False")
	if err != nil {
		t.Fatalf("RecordAnswer() error = %v", err)
	}
	for i, q := range got.Questions {
		if i == 1 {
			if !q.Answered() || q.Correct() {
				t.Errorf("question 1: answered=%v correct=%v, want answered and wrong", q.Answered(), q.Correct())
			}
			continue
		}
		if q.Answered() {
			t.Errorf("question %d unexpectedly answered", i)
		}
	}
}

func TestRecordAnswer_AlreadyAnswered(t *testing.T) {
	quiz, err := RecordAnswer(sampleQuiz(), 0, "O2")
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	again, err := RecordAnswer(quiz, 0, "CO2")
	if !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("err = %v, want ErrAlreadyAnswered", err)
	}
	q := again.Questions[0]
	if *q.UserAnswer != "O2" || q.Correct() {
		t.Errorf("answered question changed: userAnswer=%q correct=%v", *q.UserAnswer, q.Correct())
	}
}

func TestRecordAnswer_IndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 3, 10} {
		if _, err := RecordAnswer(sampleQuiz(), idx, "x"); !errors.Is(err, ErrQuestionIndex) {
			t.Errorf("index %d: err = %v, want ErrQuestionIndex", idx, err)
		}
	}
}

func TestFinishQuiz_ScoreMatchesCorrectCount(t *testing.T) {
	quiz := sampleQuiz()
	quiz, _ = RecordAnswer(quiz, 0, "co2")
	quiz, _ = RecordAnswer(quiz, 1, "false")
	quiz, _ = RecordAnswer(quiz, 2, "Chlorophyll")

	done := FinishQuiz(quiz)
	if !done.Completed {
		t.Fatal("expected completed")
	}
	if done.Score == nil || *done.Score != 2 {
		t.Errorf("Score = %v, want 2", done.Score)
	}
	if Score(done) != 2 {
		t.Errorf("Score() = %d, want 2", Score(done))
	}
	if AnsweredCount(done) != 3 {
		t.Errorf("AnsweredCount() = %d, want 3", AnsweredCount(done))
	}
}

func TestFinishQuiz_Unanswered(t *testing.T) {
	done := FinishQuiz(sampleQuiz())
	if done.Score == nil || *done.Score != 0 {
		t.Errorf("Score = %v, want 0", done.Score)
	}
}

func TestFindByID(t *testing.T) {
	items := []Item{
		&Solution{ID: "a"},
		sampleQuiz(),
	}
	it, ok := FindByID(items, "quiz-1")
	if !ok {
		t.Fatal("expected quiz to be found")
	}
	if _, isQuiz := it.(*Quiz); !isQuiz {
		t.Errorf("found %T, want *Quiz", it)
	}
	if _, ok := FindByID(items, "missing"); ok {
		t.Error("expected missing id to be reported")
	}
	if _, ok := FindByID(nil, "a"); ok {
		t.Error("expected empty collection to find nothing")
	}
}
