package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/tutor"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor [message]",
	Short: "Chat with the AI tutor",
	Long: `Chat with the AI tutor. With a message, prints the tutor's reply and exits.
Without one, reads messages line by line from standard input until EOF.
The conversation is not saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer opts.Close()

		sess := tutor.NewSession(opts.Gateway)
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			chatOnce(cmd, sess, out, strings.Join(args, " "))
			return nil
		}

		fmt.Fprintln(out, tutor.Greeting)
		sc := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				fmt.Fprintln(out)
				return sc.Err()
			}
			chatOnce(cmd, sess, out, sc.Text())
		}
	},
}

func chatOnce(cmd *cobra.Command, sess *tutor.Session, out io.Writer, text string) {
	if !sess.Send(commandContext(cmd), text) {
		return
	}
	msgs := sess.Messages()
	fmt.Fprintln(out, msgs[len(msgs)-1].Text)
}
