package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved history and reset preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		out := cmd.OutOrStdout()

		if !yes {
			fmt.Fprint(out, "This deletes all saved solutions and quizzes. Continue? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		ctx := commandContext(cmd)
		if err := opts.Store.ClearHistory(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		if err := opts.Store.SetTheme(ctx, store.ThemeLight); err != nil {
			return fmt.Errorf("reset theme: %w", err)
		}
		if err := opts.Store.SetProStatus(ctx, false); err != nil {
			return fmt.Errorf("reset subscription: %w", err)
		}

		fmt.Fprintln(out, "History cleared and preferences reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
