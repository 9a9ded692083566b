package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/outline/internal/outline"
	"github.com/mvp-joe/outline/internal/report"
)

var summarizeCap int

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize one Python source file",
	Long: `Summarize prints the classes, functions, and imports a file declares,
and the calls made inside its first function.

Each category lists at most --cap entries (default from summary.cap) and
reports how many more were found. Files that are not Python source, or that
do not parse, fail with a non-zero exit status.

Examples:
  # Summarize a module
  outline summarize app/agent.py

  # Show every entry
  outline summarize app/agent.py --cap 1000
`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().IntVar(&summarizeCap, "cap", 0, "entries shown per category (default from config)")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	if err := applyCap(cmd, cfg, summarizeCap); err != nil {
		return err
	}

	summarizer := outline.New(outline.Options{MaxCalleeLength: cfg.Summary.MaxCalleeLength})
	return executeSummarize(cmd.Context(), cmd.OutOrStdout(), summarizer, args[0], cfg.Summary.Cap)
}

func executeSummarize(ctx context.Context, out io.Writer, summarizer *outline.Summarizer, path string, limit int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := summarizer.SummarizeFile(ctx, path, limit)
	if err != nil {
		return err
	}
	return report.Render(out, "", s)
}
