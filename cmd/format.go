package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/smartstudy/internal/history"
)

const dateLayout = "2006-01-02 15:04"

// printItem writes a full history record.
func printItem(w io.Writer, item history.Item) {
	switch v := item.(type) {
	case *history.Solution:
		printSolution(w, v)
	case *history.Quiz:
		printQuiz(w, v)
	}
}

func printSolution(w io.Writer, s *history.Solution) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "ID:        %s\n", s.ID)
	fmt.Fprintf(w, "Created:   %s\n", s.CreatedAt.Local().Format(dateLayout))
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Question:  %s\n", s.Question)
	fmt.Fprintf(w, "Answer:    %s\n", s.Answer)
	fmt.Fprintln(w, sep)
	if len(s.Steps) == 0 {
		fmt.Fprintln(w, "No detailed steps provided.")
		return
	}
	for i, step := range s.Steps {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
}

func printQuiz(w io.Writer, q *history.Quiz) {
	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "ID:        %s\n", q.ID)
	fmt.Fprintf(w, "Title:     %s\n", q.Title)
	fmt.Fprintf(w, "Created:   %s\n", q.CreatedAt.Local().Format(dateLayout))
	fmt.Fprintf(w, "Status:    %s\n", quizStatus(q))
	fmt.Fprintln(w, sep)

	for i, qq := range q.Questions {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, qq.Type, qq.Text)
		for j, opt := range qq.Options {
			fmt.Fprintf(w, "   %c) %s\n", 'A'+rune(j), opt)
		}
		fmt.Fprintf(w, "   Answer: %s\n", qq.CorrectAnswer)
		if qq.UserAnswer != nil {
			mark := "✗"
			if qq.Correct() {
				mark = "✓"
			}
			fmt.Fprintf(w, "   You answered: %s %s\n", *qq.UserAnswer, mark)
		}
		if qq.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", qq.Explanation)
		}
	}
}

func quizStatus(q *history.Quiz) string {
	switch {
	case q.Completed && q.Score != nil:
		return fmt.Sprintf("completed, score %d/%d", *q.Score, len(q.Questions))
	case history.AnsweredCount(q) > 0:
		return fmt.Sprintf("in progress, %d/%d answered", history.AnsweredCount(q), len(q.Questions))
	default:
		return "not started"
	}
}

// itemSummary is the one-line listing form of a record.
func itemSummary(item history.Item) string {
	switch v := item.(type) {
	case *history.Solution:
		return truncate(v.Question, 48)
	case *history.Quiz:
		s := truncate(v.Title, 48)
		if v.Completed && v.Score != nil {
			s += fmt.Sprintf("  (%d/%d)", *v.Score, len(v.Questions))
		}
		return s
	}
	return item.ItemTitle()
}
