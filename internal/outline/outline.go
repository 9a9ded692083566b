package outline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/outline/internal/classify"
	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/mvp-joe/outline/internal/parsers"
	"github.com/mvp-joe/outline/internal/summary"
)

// Language pairs a tree provider with the classifier for its node kinds.
type Language struct {
	Parser     parsers.Parser
	Classifier classify.Classifier
}

// Summarizer builds structural summaries for the languages it knows.
// It holds no mutable state and is safe for concurrent use.
type Summarizer struct {
	byName map[string]Language
	byExt  map[string]Language
}

// Options configures a Summarizer.
type Options struct {
	// MaxCalleeLength bounds rendered callees; zero keeps the classifier default.
	MaxCalleeLength int
}

// New creates a Summarizer for Python.
func New(opts Options) *Summarizer {
	s := &Summarizer{
		byName: make(map[string]Language),
		byExt:  make(map[string]Language),
	}
	s.register(Language{
		Parser:     parsers.NewPythonParser(),
		Classifier: classify.NewPython(classify.WithMaxCalleeLength(opts.MaxCalleeLength)),
	})
	return s
}

func (s *Summarizer) register(lang Language) {
	s.byName[lang.Parser.Language()] = lang
	for _, ext := range lang.Parser.Extensions() {
		s.byExt[ext] = lang
	}
}

// Supports reports whether path has an extension with a registered language.
func (s *Summarizer) Supports(path string) bool {
	_, ok := s.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// LanguageOf returns the registered language for path's extension.
func (s *Summarizer) LanguageOf(path string) (string, bool) {
	lang, ok := s.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false
	}
	return lang.Parser.Language(), true
}

// Summarize parses source as language and builds its summary, keeping at
// most limit entries per category. It returns a *SyntaxError when the source
// does not parse and ErrUnsupportedInput for an unknown language; no partial
// summary is returned on failure.
func (s *Summarizer) Summarize(ctx context.Context, language string, source []byte, limit int) (*extraction.Summary, error) {
	lang, ok := s.byName[language]
	if !ok {
		return nil, fmt.Errorf("%w: language %q", ErrUnsupportedInput, language)
	}
	return summarize(ctx, lang, source, limit)
}

// SummarizeFile reads path and summarizes it. The extension selects the
// language; binary content is rejected as ErrUnsupportedInput.
func (s *Summarizer) SummarizeFile(ctx context.Context, path string, limit int) (*extraction.Summary, error) {
	lang, ok := s.byExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a supported source file", ErrUnsupportedInput, path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return summarize(ctx, lang, source, limit)
}

func summarize(ctx context.Context, lang Language, source []byte, limit int) (*extraction.Summary, error) {
	if err := checkText(source); err != nil {
		return nil, err
	}

	tree, err := lang.Parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return summary.Build(tree.Root, lang.Classifier, limit), nil
}

// checkText rejects content that cannot be source text.
func checkText(source []byte) error {
	if bytes.IndexByte(source, 0) >= 0 {
		return fmt.Errorf("%w: content contains NUL bytes", ErrUnsupportedInput)
	}
	if !utf8.Valid(source) {
		return fmt.Errorf("%w: content is not valid UTF-8", ErrUnsupportedInput)
	}
	return nil
}
