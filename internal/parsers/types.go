package parsers

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvp-joe/outline/internal/syntax"
)

// ErrSyntax matches every *SyntaxError via errors.Is.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports source text the grammar could not parse.
type SyntaxError struct {
	Line    int    // 1-based line of the first offending node
	Excerpt string // trimmed text of that line
}

func (e *SyntaxError) Error() string {
	if e.Excerpt == "" {
		return fmt.Sprintf("syntax error at line %d", e.Line)
	}
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Excerpt)
}

// Is lets errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Parser turns source text into a syntax tree for one language.
type Parser interface {
	// Language returns the language name, e.g. "python".
	Language() string

	// Extensions returns the file extensions handled, with leading dot.
	Extensions() []string

	// Parse builds the syntax tree. Source that does not parse cleanly
	// yields a *SyntaxError and no tree.
	Parse(ctx context.Context, source []byte) (*syntax.Tree, error)
}
