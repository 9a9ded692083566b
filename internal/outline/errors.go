package outline

import (
	"errors"

	"github.com/mvp-joe/outline/internal/parsers"
)

var (
	// ErrUnsupportedInput indicates input outside the supported grammar:
	// an unknown extension or content that is not text.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = parsers.ErrSyntax
)

// SyntaxError is a parse failure with the offending line and a short excerpt.
type SyntaxError = parsers.SyntaxError
