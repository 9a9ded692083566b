package outline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvp-joe/outline/internal/classify"
	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Summarizer:
// - Fixture file: types, callables, imports and target calls with lines
// - from a.b import x, y expands to a.b.x and a.b.y
// - import os yields "os"
// - self.logger.info(...) renders as a dotted callee
// - File without callables: no target, zero calls, no error
// - Syntax error: *SyntaxError with the offending line, no summary
// - A function or if statement with no body is a syntax error on its header line
// - Dotted callees are kept whole regardless of the length bound
// - Unknown extension and binary content: ErrUnsupportedInput
// - Unknown language name: ErrUnsupportedInput
// - Identical input gives equal output
// - Cap invariant and non-decreasing lines across categories
// - Missing file surfaces the read error, not a parse failure

const fixtures = "../../testdata/code/python/"

func TestSummarizeFile_Agent(t *testing.T) {
	t.Parallel()

	s, err := New(Options{}).SummarizeFile(context.Background(), fixtures+"agent.py", extraction.DefaultCap)
	require.NoError(t, err)
	require.NotNil(t, s)

	assert.Equal(t, []extraction.Declaration{
		{Name: "AgentError", Line: 10},
		{Name: "BaseAgent", Line: 14},
	}, s.Types.Shown)

	assert.Equal(t, []extraction.Declaration{
		{Name: "__init__", Line: 15},
		{Name: "_setup", Line: 22},
		{Name: "run", Line: 25},
		{Name: "step", Line: 29},
		{Name: "create_agent", Line: 33},
	}, s.Callables.Shown)

	var paths []string
	for _, ref := range s.Imports.Shown {
		paths = append(paths, ref.Path)
	}
	assert.Equal(t, []string{
		"os",
		"logging",
		"typing.Any",
		"typing.Dict",
		"typing.Optional",
		"settings",
		"brokers.paper",
	}, paths)

	require.NotNil(t, s.Target)
	assert.Equal(t, extraction.Declaration{Name: "__init__", Line: 15}, *s.Target)
	assert.Equal(t, []extraction.CallSite{
		{Callee: "logging.getLogger", Line: 18},
		{Callee: "self.logger.info", Line: 19},
		{Callee: "self._setup", Line: 20},
	}, s.CallsInTarget.Shown)
	assert.Equal(t, 3, s.CallsInTarget.TotalCount)
}

func TestSummarize_ImportForms(t *testing.T) {
	t.Parallel()

	src := []byte("from a.b import x, y\nimport os\n")
	s, err := New(Options{}).Summarize(context.Background(), "python", src, 10)
	require.NoError(t, err)

	assert.Equal(t, []extraction.ImportReference{
		{Path: "a.b.x", Line: 1},
		{Path: "a.b.y", Line: 1},
		{Path: "os", Line: 2},
	}, s.Imports.Shown)
}

func TestSummarize_NoCallables(t *testing.T) {
	t.Parallel()

	s, err := New(Options{}).SummarizeFile(context.Background(), fixtures+"constants.py", 10)
	require.NoError(t, err)

	assert.Nil(t, s.Target)
	assert.Equal(t, 0, s.CallsInTarget.TotalCount)
	assert.Empty(t, s.CallsInTarget.Shown)
	assert.Equal(t, 0, s.Callables.TotalCount)

	var paths []string
	for _, ref := range s.Imports.Shown {
		paths = append(paths, ref.Path)
	}
	assert.Equal(t, []string{"__future__.annotations", "json"}, paths)
}

func TestSummarize_SyntaxError(t *testing.T) {
	t.Parallel()

	s, err := New(Options{}).SummarizeFile(context.Background(), fixtures+"broken.py", 10)
	require.Error(t, err)
	assert.Nil(t, s)

	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 8, synErr.Line)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.False(t, errors.Is(err, ErrUnsupportedInput))
}

func TestSummarizeFile_UnsupportedInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	textFile := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(textFile, []byte("hello"), 0644))

	binary := filepath.Join(dir, "blob.py")
	require.NoError(t, os.WriteFile(binary, []byte{'x', 0, 'y'}, 0644))

	invalid := filepath.Join(dir, "latin1.py")
	require.NoError(t, os.WriteFile(invalid, []byte{'#', ' ', 0xe9, '\n'}, 0644))

	summarizer := New(Options{})
	for _, path := range []string{textFile, binary, invalid} {
		s, err := summarizer.SummarizeFile(context.Background(), path, 10)
		assert.Nil(t, s, path)
		assert.True(t, errors.Is(err, ErrUnsupportedInput), path)
	}

	_, err := summarizer.Summarize(context.Background(), "cobol", []byte("x"), 10)
	assert.True(t, errors.Is(err, ErrUnsupportedInput))

	assert.True(t, summarizer.Supports("pkg/mod.PY"))
	assert.True(t, summarizer.Supports("stubs/mod.pyi"))
	assert.False(t, summarizer.Supports("main.go"))

	lang, ok := summarizer.LanguageOf("pkg/mod.py")
	assert.True(t, ok)
	assert.Equal(t, "python", lang)
	_, ok = summarizer.LanguageOf("main.go")
	assert.False(t, ok)
}

func TestSummarizeFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := New(Options{}).SummarizeFile(context.Background(), filepath.Join(t.TempDir(), "gone.py"), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrUnsupportedInput))
	assert.False(t, errors.Is(err, ErrSyntax))
}

func TestSummarize_Deterministic(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile(fixtures + "agent.py")
	require.NoError(t, err)

	summarizer := New(Options{})
	first, err := summarizer.Summarize(context.Background(), "python", source, 3)
	require.NoError(t, err)
	second, err := summarizer.Summarize(context.Background(), "python", source, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_CapInvariant(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile(fixtures + "agent.py")
	require.NoError(t, err)

	summarizer := New(Options{})
	full, err := summarizer.Summarize(context.Background(), "python", source, 100)
	require.NoError(t, err)

	for _, limit := range []int{0, 1, 2, 5, 10} {
		s, err := summarizer.Summarize(context.Background(), "python", source, limit)
		require.NoError(t, err)

		assert.Equal(t, full.Types.TotalCount, s.Types.TotalCount)
		assert.Len(t, s.Types.Shown, min(s.Types.TotalCount, limit))
		assert.Len(t, s.Callables.Shown, min(s.Callables.TotalCount, limit))
		assert.Len(t, s.Imports.Shown, min(s.Imports.TotalCount, limit))
		assert.Len(t, s.CallsInTarget.Shown, min(s.CallsInTarget.TotalCount, limit))

		assertNonDecreasing(t, declLines(s.Types.Shown))
		assertNonDecreasing(t, declLines(s.Callables.Shown))
		assertNonDecreasing(t, importLines(s.Imports.Shown))
		assertNonDecreasing(t, callLines(s.CallsInTarget.Shown))
	}
}

func TestSummarize_CalleeLengthOption(t *testing.T) {
	t.Parallel()

	src := []byte("def f():\n    a_really_long_receiver_name.method()\n    handlers[kind].run()\n    g()\n")
	s, err := New(Options{MaxCalleeLength: 5}).Summarize(context.Background(), "python", src, 10)
	require.NoError(t, err)
	assert.Equal(t, []extraction.CallSite{
		{Callee: "a_really_long_receiver_name.method", Line: 2},
		{Callee: "g", Line: 4},
	}, s.CallsInTarget.Shown)
	assert.Equal(t, 2, s.CallsInTarget.TotalCount)
}

func TestSummarize_LongDottedCallee(t *testing.T) {
	t.Parallel()

	chain := "self" + strings.Repeat(".component_name_segment", 6) + ".run"
	src := []byte("def f():\n    " + chain + "()\n")
	s, err := New(Options{}).Summarize(context.Background(), "python", src, 10)
	require.NoError(t, err)
	assert.Greater(t, len(chain), classify.DefaultMaxCalleeLength)
	assert.Equal(t, []extraction.CallSite{{Callee: chain, Line: 2}}, s.CallsInTarget.Shown)
}

func TestSummarize_MissingBody(t *testing.T) {
	t.Parallel()

	summarizer := New(Options{})
	for source, line := range map[string]int{
		"def f():\n": 1,
		"import os\n\ndef run():\n    if os.name:\n\ndef later():\n    pass\n": 4,
	} {
		s, err := summarizer.Summarize(context.Background(), "python", []byte(source), 10)
		assert.Nil(t, s, source)
		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr), source)
		assert.Equal(t, line, syntaxErr.Line, source)
		assert.True(t, errors.Is(err, ErrSyntax), source)
	}
}

func declLines(decls []extraction.Declaration) []int {
	lines := make([]int, len(decls))
	for i, d := range decls {
		lines[i] = d.Line
	}
	return lines
}

func importLines(refs []extraction.ImportReference) []int {
	lines := make([]int, len(refs))
	for i, r := range refs {
		lines[i] = r.Line
	}
	return lines
}

func callLines(calls []extraction.CallSite) []int {
	lines := make([]int, len(calls))
	for i, c := range calls {
		lines[i] = c.Line
	}
	return lines
}

func assertNonDecreasing(t *testing.T, lines []int) {
	t.Helper()
	for i := 1; i < len(lines); i++ {
		assert.GreaterOrEqual(t, lines[i], lines[i-1])
	}
}
