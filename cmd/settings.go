package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		ctx := commandContext(cmd)
		t, err := opts.Store.GetTheme(ctx)
		if err != nil {
			return err
		}
		pro, err := opts.Store.GetProStatus(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Theme:  %s\n", t)
		fmt.Fprintf(out, "Pro:    %s\n", onOff(pro))
		return nil
	},
}

var settingsThemeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the colour theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark)},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			t, err := opts.Store.GetTheme(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, t)
			return nil
		}

		t, err := store.ParseTheme(args[0])
		if err != nil {
			return err
		}
		if err := opts.Store.SetTheme(ctx, t); err != nil {
			return err
		}
		fmt.Fprintf(out, "Theme set to %s.\n", t)
		return nil
	},
}

var settingsProCmd = &cobra.Command{
	Use:       "pro [on|off]",
	Short:     "Show or set the subscription status (mock payment)",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer opts.Close()

		ctx := commandContext(cmd)
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			pro, err := opts.Store.GetProStatus(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, onOff(pro))
			return nil
		}

		var pro bool
		switch args[0] {
		case "on":
			pro = true
		case "off":
		default:
			return fmt.Errorf("invalid value %q: want on or off", args[0])
		}
		if err := opts.Store.SetProStatus(ctx, pro); err != nil {
			return err
		}
		if pro {
			fmt.Fprintln(out, "Welcome to Pro!")
		} else {
			fmt.Fprintln(out, "Pro plan cancelled.")
		}
		return nil
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsProCmd)
}
