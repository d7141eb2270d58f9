package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	opts, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer opts.Close()

	if err := opts.EnableAI(commandContext(cmd)); err != nil {
		if !errors.Is(err, app.ErrAIUnavailable) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		}
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
	}

	return app.Run(opts)
}
