package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"sync"

	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/mvp-joe/outline/internal/report"
)

// Summarizer is the part of *outline.Summarizer a session needs.
type Summarizer interface {
	LanguageOf(path string) (string, bool)
	Summarize(ctx context.Context, language string, source []byte, limit int) (*extraction.Summary, error)
}

// Update is the outcome of refreshing one path.
type Update struct {
	Path      string
	Summary   *extraction.Summary
	Err       error
	Removed   bool // the file no longer exists
	Cached    bool // the summary came from the cache
	Unchanged bool // content matches what was last reported for Path
}

// Session re-summarizes changed files and reports what changed.
type Session struct {
	summarizer Summarizer
	cache      *SummaryCache
	limit      int
	out        io.Writer

	mu   sync.Mutex
	last map[string]string // path -> content key last reported

	outMu sync.Mutex
}

// NewSession creates a session writing reports to out.
func NewSession(summarizer Summarizer, cache *SummaryCache, limit int, out io.Writer) *Session {
	return &Session{
		summarizer: summarizer,
		cache:      cache,
		limit:      limit,
		out:        out,
		last:       make(map[string]string),
	}
}

// Refresh reads path and returns its current summary, consulting the cache
// before parsing. Failed summaries are not cached.
func (s *Session) Refresh(ctx context.Context, path string) Update {
	source, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		_, known := s.last[path]
		delete(s.last, path)
		s.mu.Unlock()
		return Update{Path: path, Removed: true, Unchanged: !known}
	}
	if err != nil {
		return Update{Path: path, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}

	language, ok := s.summarizer.LanguageOf(path)
	if !ok {
		return Update{Path: path, Err: fmt.Errorf("%s is not a supported source file", path)}
	}

	key := contentKey(language, s.limit, source)
	s.mu.Lock()
	unchanged := s.last[path] == key
	s.last[path] = key
	s.mu.Unlock()

	if summary, ok := s.cache.Get(key); ok {
		return Update{Path: path, Summary: summary, Cached: true, Unchanged: unchanged}
	}

	summary, err := s.summarizer.Summarize(ctx, language, source, s.limit)
	if err != nil {
		// A failed file is reported again on its next save.
		s.mu.Lock()
		delete(s.last, path)
		s.mu.Unlock()
		return Update{Path: path, Err: err}
	}
	s.cache.Set(key, summary)
	return Update{Path: path, Summary: summary, Unchanged: unchanged}
}

// Handle refreshes files and writes a report for each one whose content
// changed since it was last reported.
func (s *Session) Handle(ctx context.Context, files []string) {
	reported := 0
	for _, path := range files {
		if ctx.Err() != nil {
			return
		}
		u := s.Refresh(ctx, path)
		if u.Unchanged {
			continue
		}
		if err := s.render(u); err != nil {
			log.Printf("Warning: failed to write report for %s: %v", path, err)
			continue
		}
		reported++
	}
	if reported > 0 {
		log.Printf("Re-summarized %d of %d changed files", reported, len(files))
	}
}

func (s *Session) render(u Update) error {
	var text string
	switch {
	case u.Removed:
		text = fmt.Sprintf("%s\n  removed\n", u.Path)
	case u.Err != nil:
		text = report.FormatFailure(u.Path, u.Err)
	default:
		text = report.Format(u.Path, u.Summary)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	_, err := io.WriteString(s.out, text)
	return err
}

// Run feeds fw's batches to the session until ctx is cancelled, then stops fw.
func Run(ctx context.Context, fw FileWatcher, s *Session) error {
	if err := fw.Start(ctx, func(files []string) { s.Handle(ctx, files) }); err != nil {
		return err
	}
	<-ctx.Done()
	return fw.Stop()
}
