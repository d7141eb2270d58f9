package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved solutions and quizzes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved items, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")

		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		items, err := opts.Store.GetHistory(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No activity yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-8s  %-16s  %s\n", "ID", "Kind", "Created", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		shown := 0
		for _, it := range items {
			if kind != "" && string(it.ItemKind()) != kind {
				continue
			}
			if limit > 0 && shown >= limit {
				break
			}
			fmt.Fprintf(out, "%-36s  %-8s  %-16s  %s\n",
				it.ItemID(),
				it.ItemKind(),
				it.Created().Local().Format(dateLayout),
				itemSummary(it),
			)
			shown++
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved solution or quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		item, err := opts.Store.FindItem(commandContext(cmd), args[0])
		if err != nil {
			return fmt.Errorf("find %q: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := history.MarshalItem(item)
			if err != nil {
				return fmt.Errorf("encode %q: %w", args[0], err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		printItem(out, item)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 0, "Maximum number of items to show (0 for all)")
	historyListCmd.Flags().StringP("kind", "k", "", fmt.Sprintf("Filter by kind (%s or %s)", history.KindSolution, history.KindQuiz))

	historyShowCmd.Flags().Bool("json", false, "Print the item as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}
