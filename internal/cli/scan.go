package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/outline/internal/config"
	"github.com/mvp-joe/outline/internal/outline"
	"github.com/mvp-joe/outline/internal/report"
	"github.com/mvp-joe/outline/internal/scan"
)

var (
	scanCap   int
	quietFlag bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Summarize every Python file in a directory tree",
	Long: `Scan discovers source files under dir (default: current directory) using
paths.include and paths.ignore, and prints a summary for each one.

A file that fails to summarize is reported inline and does not stop the scan;
the command exits non-zero if any file failed.

Examples:
  # Scan the current project
  outline scan

  # Scan another tree without the progress bar
  outline scan ../service --quiet
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntVar(&scanCap, "cap", 0, "entries shown per category (default from config)")
	scanCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
}

// ErrFilesFailed is returned when a scan finished but some files could not be summarized.
var ErrFilesFailed = errors.New("some files could not be summarized")

func runScan(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rootDir, err := resolveDir(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	if err := applyCap(cmd, cfg, scanCap); err != nil {
		return err
	}

	progress := NewCLIProgressReporter(cmd.ErrOrStderr(), quietFlag)
	return executeScan(ctx, cmd.OutOrStdout(), rootDir, cfg, progress)
}

func executeScan(ctx context.Context, out io.Writer, rootDir string, cfg *config.Config, progress scan.ProgressReporter) error {
	discovery, err := scan.NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to create file discovery: %w", err)
	}

	summarizer := outline.New(outline.Options{MaxCalleeLength: cfg.Summary.MaxCalleeLength})
	scanner := scan.NewScanner(discovery, summarizer, scan.Config{
		Workers: cfg.Scan.Workers,
		Cap:     cfg.Summary.Cap,
	}, progress)

	results, stats, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		path := displayPath(rootDir, r.Path)
		if r.Err != nil {
			fmt.Fprint(out, report.FormatFailure(path, r.Err))
			continue
		}
		if err := report.Render(out, path, r.Summary); err != nil {
			return err
		}
	}

	if stats.FilesFailed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, stats.FilesFailed, stats.FilesScanned)
	}
	return nil
}

// resolveDir returns the absolute directory named by args, or the working directory.
func resolveDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return abs, nil
}

// displayPath shows path relative to rootDir when possible.
func displayPath(rootDir, path string) string {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// signalContext cancels on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
