package scan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/outline/internal/extraction"
)

// Summarizer summarizes one file. *outline.Summarizer satisfies it.
type Summarizer interface {
	SummarizeFile(ctx context.Context, path string, limit int) (*extraction.Summary, error)
}

// Result is the outcome for one file: a summary or an error, never both.
type Result struct {
	Path    string
	Summary *extraction.Summary
	Err     error
}

// Stats tracks what a scan processed.
type Stats struct {
	FilesScanned   int
	FilesFailed    int
	ProcessingTime time.Duration
}

// Config holds scanner settings.
type Config struct {
	Workers int // files summarized concurrently; values below 1 mean 1
	Cap     int // entries kept per summary category
}

// Scanner summarizes every discovered file.
type Scanner struct {
	discovery  *FileDiscovery
	summarizer Summarizer
	cfg        Config
	progress   ProgressReporter
	progressMu sync.Mutex
}

// NewScanner creates a new Scanner.
func NewScanner(discovery *FileDiscovery, summarizer Summarizer, cfg Config, progress ProgressReporter) *Scanner {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Scanner{
		discovery:  discovery,
		summarizer: summarizer,
		cfg:        cfg,
		progress:   progress,
	}
}

// Scan discovers files and summarizes them. Results keep discovery order.
// A file that fails to summarize is reported in its Result and does not stop
// the scan; only discovery errors and cancellation fail the whole call.
func (s *Scanner) Scan(ctx context.Context) ([]Result, *Stats, error) {
	start := time.Now()

	s.progress.OnDiscoveryStart()
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to discover files: %w", err)
	}
	s.progress.OnDiscoveryComplete(len(files))

	results, err := s.SummarizeFiles(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{
		FilesScanned:   len(results),
		ProcessingTime: time.Since(start),
	}
	for _, r := range results {
		if r.Err != nil {
			stats.FilesFailed++
		}
	}
	s.progress.OnComplete(stats)

	return results, stats, nil
}

// SummarizeFiles summarizes the given files with a bounded number of workers.
// Each file gets its own tree; workers share nothing but the result slice,
// where each writes only its own index.
func (s *Scanner) SummarizeFiles(ctx context.Context, files []string) ([]Result, error) {
	s.progress.OnFileProcessingStart(len(files))

	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := s.summarizer.SummarizeFile(gctx, path, s.cfg.Cap)
			results[i] = Result{Path: path, Summary: summary, Err: err}
			s.fileProcessed(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}
	return results, nil
}

func (s *Scanner) fileProcessed(path string) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.progress.OnFileProcessed(path)
}
