package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/app"
	"github.com/abhisek/smartstudy/internal/config"
	"github.com/abhisek/smartstudy/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "smartstudy",
	Short: "AI homework helper",
	Long: `SmartStudy is a terminal study assistant. Scan, type or speak a question
to get a worked solution or a practice quiz, then review it with the AI tutor.

Set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY)
to enable AI features. Configuration is read from
~/.config/smartstudy/config.yaml and SMARTSTUDY_* environment variables.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SMARTSTUDY_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ~/.config/smartstudy/config.yaml)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, or the default one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then SMARTSTUDY_DB env var and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openApp loads configuration and opens the application context. With
// withAI set, a missing provider is an error.
func openApp(cmd *cobra.Command, withAI bool) (*app.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	ctx := commandContext(cmd)
	opts, err := app.Init(ctx, cfg, dbPath)
	if err != nil {
		return nil, err
	}
	opts.Version = version

	if withAI {
		if err := opts.EnableAI(ctx); err != nil {
			opts.Close()
			if errors.Is(err, app.ErrAIUnavailable) {
				return nil, fmt.Errorf("%w (set GEMINI_API_KEY or configure llm.provider)", err)
			}
			return nil, fmt.Errorf("init LLM provider: %w", err)
		}
	}
	return opts, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
