package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Format:
// - Every category lists its shown entries with lines
// - Truncated categories end with "... and N more" where N = total - shown
// - Untruncated categories have no remainder line
// - No target: calls section says so
// - Render writes the same text as Format

func sampleSummary() *extraction.Summary {
	return &extraction.Summary{
		Types: extraction.CappedList[extraction.Declaration]{
			Shown:      []extraction.Declaration{{Name: "BaseAgent", Line: 14}},
			TotalCount: 1,
		},
		Callables: extraction.CappedList[extraction.Declaration]{
			Shown:      []extraction.Declaration{{Name: "__init__", Line: 15}, {Name: "_setup", Line: 22}},
			TotalCount: 12,
		},
		Imports: extraction.CappedList[extraction.ImportReference]{
			Shown:      []extraction.ImportReference{{Path: "a.b.x", Line: 1}},
			TotalCount: 1,
		},
		Target: &extraction.Declaration{Name: "__init__", Line: 15},
		CallsInTarget: extraction.CappedList[extraction.CallSite]{
			Shown:      []extraction.CallSite{{Callee: "self.logger.info", Line: 19}},
			TotalCount: 4,
		},
	}
}

func TestFormat_Sections(t *testing.T) {
	t.Parallel()

	out := Format("agents/base_agent.py", sampleSummary())

	assert.True(t, strings.HasPrefix(out, "agents/base_agent.py\n"))
	assert.Contains(t, out, "Classes: 1\n  - BaseAgent (line 14)\n")
	assert.Contains(t, out, "Functions: 12\n  - __init__ (line 15)\n  - _setup (line 22)\n  ... and 10 more\n")
	assert.Contains(t, out, "Imports: 1\n  - a.b.x\n")
	assert.Contains(t, out, "Calls in __init__(): 4\n  - self.logger.info() (line 19)\n  ... and 3 more\n")
	assert.Equal(t, 2, strings.Count(out, "more\n"))
}

func TestFormat_NoTarget(t *testing.T) {
	t.Parallel()

	s := sampleSummary()
	s.Target = nil
	s.CallsInTarget = extraction.CappedList[extraction.CallSite]{Shown: []extraction.CallSite{}}

	out := Format("", s)
	assert.True(t, strings.HasPrefix(out, "Classes:"))
	assert.Contains(t, out, "Calls: no functions found\n")
}

func TestRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, "x.py", sampleSummary()))
	assert.Equal(t, Format("x.py", sampleSummary()), buf.String())
}

func TestFormatFailure(t *testing.T) {
	t.Parallel()

	out := FormatFailure("bad.py", errors.New("syntax error at line 3: def f(:"))
	assert.Equal(t, "bad.py\n  error: syntax error at line 3: def f(:\n", out)
}
