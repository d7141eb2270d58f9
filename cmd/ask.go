package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Solve a question or generate a quiz from text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		forceQuiz, _ := cmd.Flags().GetBool("quiz")

		opts, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer opts.Close()

		text := strings.Join(args, " ")
		item, err := opts.Study.Process(commandContext(cmd), text, forceQuiz)
		if err != nil {
			return err
		}

		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolP("quiz", "q", false, "Always generate a quiz")
}
