package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/outline/internal/extraction"
)

// Format renders a summary as human-readable text. Each category lists its
// shown entries followed by "... and N more" when entries were capped.
func Format(path string, s *extraction.Summary) string {
	var sb strings.Builder

	if path != "" {
		sb.WriteString(fmt.Sprintf("%s\n", path))
	}

	sb.WriteString(fmt.Sprintf("Classes: %d\n", s.Types.TotalCount))
	for _, d := range s.Types.Shown {
		sb.WriteString(fmt.Sprintf("  - %s (line %d)\n", d.Name, d.Line))
	}
	writeRemaining(&sb, s.Types.Remaining())

	sb.WriteString(fmt.Sprintf("Functions: %d\n", s.Callables.TotalCount))
	for _, d := range s.Callables.Shown {
		sb.WriteString(fmt.Sprintf("  - %s (line %d)\n", d.Name, d.Line))
	}
	writeRemaining(&sb, s.Callables.Remaining())

	sb.WriteString(fmt.Sprintf("Imports: %d\n", s.Imports.TotalCount))
	for _, ref := range s.Imports.Shown {
		sb.WriteString(fmt.Sprintf("  - %s\n", ref.Path))
	}
	writeRemaining(&sb, s.Imports.Remaining())

	if s.Target == nil {
		sb.WriteString("Calls: no functions found\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Calls in %s(): %d\n", s.Target.Name, s.CallsInTarget.TotalCount))
	for _, c := range s.CallsInTarget.Shown {
		sb.WriteString(fmt.Sprintf("  - %s() (line %d)\n", c.Callee, c.Line))
	}
	writeRemaining(&sb, s.CallsInTarget.Remaining())

	return sb.String()
}

// Render writes Format's output to w.
func Render(w io.Writer, path string, s *extraction.Summary) error {
	_, err := io.WriteString(w, Format(path, s))
	return err
}

// FormatFailure renders a per-file failure line.
func FormatFailure(path string, err error) string {
	return fmt.Sprintf("%s\n  error: %v\n", path, err)
}

func writeRemaining(sb *strings.Builder, n int) {
	if n > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", n))
	}
}
