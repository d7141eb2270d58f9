package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/history"
)

// studyStats aggregates saved history.
type studyStats struct {
	Solutions      int
	Quizzes        int
	CompletedQuiz  int
	Questions      int
	Answered       int
	Correct        int
	ScoredQuestion int
}

func collectStats(items []history.Item) studyStats {
	var s studyStats
	for _, it := range items {
		switch v := it.(type) {
		case *history.Solution:
			s.Solutions++
		case *history.Quiz:
			s.Quizzes++
			s.Questions += len(v.Questions)
			s.Answered += history.AnsweredCount(v)
			if v.Completed && v.Score != nil {
				s.CompletedQuiz++
				s.Correct += *v.Score
				s.ScoredQuestion += len(v.Questions)
			}
		}
	}
	return s
}

// AverageScore is the percentage of questions answered correctly across
// completed quizzes, or -1 when none are completed.
func (s studyStats) AverageScore() float64 {
	if s.ScoredQuestion == 0 {
		return -1
	}
	return 100 * float64(s.Correct) / float64(s.ScoredQuestion)
}

func printStats(w io.Writer, s studyStats) {
	fmt.Fprintln(w, "Study Statistics")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-24s  %d\n", "Solutions", s.Solutions)
	fmt.Fprintf(w, "%-24s  %d\n", "Quizzes", s.Quizzes)
	fmt.Fprintf(w, "%-24s  %d\n", "Completed quizzes", s.CompletedQuiz)
	fmt.Fprintf(w, "%-24s  %d/%d\n", "Questions answered", s.Answered, s.Questions)
	if avg := s.AverageScore(); avg >= 0 {
		fmt.Fprintf(w, "%-24s  %.0f%%\n", "Average quiz score", avg)
	} else {
		fmt.Fprintf(w, "%-24s  -\n", "Average quiz score")
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		items, err := opts.Store.GetHistory(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		printStats(cmd.OutOrStdout(), collectStats(items))
		return nil
	},
}
