package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartstudy/internal/capture"
	"github.com/abhisek/smartstudy/internal/llm"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Extract text from an image, optionally solving it",
	Long: `Extract text from an image, optionally solving it. With "-" as the image,
reads a data:image/... URL or base64 encoded image from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		solve, _ := cmd.Flags().GetBool("solve")
		forceQuiz, _ := cmd.Flags().GetBool("quiz")

		img, err := loadScanImage(cmd, args[0])
		if err != nil {
			return err
		}

		opts, err := openApp(cmd, true)
		if err != nil {
			return err
		}
		defer opts.Close()

		ctx := commandContext(cmd)
		text, err := opts.Study.Scan(ctx, img)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !solve && !forceQuiz {
			fmt.Fprintln(out, text)
			return nil
		}

		item, err := opts.Study.Process(ctx, text, forceQuiz)
		if err != nil {
			return err
		}
		printItem(out, item)
		return nil
	},
}

func loadScanImage(cmd *cobra.Command, arg string) (llm.Image, error) {
	if arg != "-" {
		return capture.LoadImageFile(arg)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return llm.Image{}, fmt.Errorf("read stdin: %w", err)
	}
	return capture.DecodeImage(string(data))
}

func init() {
	scanCmd.Flags().Bool("solve", false, "Solve the extracted text")
	scanCmd.Flags().BoolP("quiz", "q", false, "Generate a quiz from the extracted text")
}
