package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/outline/internal/config"
	"github.com/mvp-joe/outline/internal/outline"
	"github.com/mvp-joe/outline/internal/scan"
	"github.com/mvp-joe/outline/internal/watcher"
)

var watchCap int

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-summarize Python files as they change",
	Long: `Watch monitors dir (default: current directory) and prints a fresh summary
whenever an included file is saved with new content, or a note when it is
removed. Changes are batched for watch.debounce_ms; summaries are cached by
content, up to watch.cache_size entries.

Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchCap, "cap", 0, "entries shown per category (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	if err := applyCap(cmd, cfg, watchCap); err != nil {
		return err
	}

	return executeWatch(ctx, cmd.OutOrStdout(), rootDir, cfg)
}

func executeWatch(ctx context.Context, out io.Writer, rootDir string, cfg *config.Config) error {
	discovery, err := scan.NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return fmt.Errorf("failed to create file discovery: %w", err)
	}

	cache, err := watcher.NewSummaryCache(cfg.Watch.CacheSize)
	if err != nil {
		return fmt.Errorf("failed to create summary cache: %w", err)
	}
	defer cache.Close()

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.NewFileWatcher(rootDir, discovery, debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	summarizer := outline.New(outline.Options{MaxCalleeLength: cfg.Summary.MaxCalleeLength})
	session := watcher.NewSession(summarizer, cache, cfg.Summary.Cap, out)

	log.Printf("Watching %s for changes (Ctrl+C to stop)", rootDir)
	logVerbose("Debounce %v, cache size %d", debounce, cfg.Watch.CacheSize)

	if err := watcher.Run(ctx, fw, session); err != nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}

	log.Println("Watch mode stopped")
	return nil
}
