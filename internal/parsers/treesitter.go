package parsers

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/outline/internal/syntax"
)

// maxExcerptRunes bounds the source excerpt attached to a SyntaxError.
const maxExcerptRunes = 80

// treeSitterParser provides common tree-sitter parsing functionality.
type treeSitterParser struct {
	language   *sitter.Language
	lang       string
	extensions []string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string, extensions ...string) *treeSitterParser {
	return &treeSitterParser{
		language:   language,
		lang:       lang,
		extensions: extensions,
	}
}

func (p *treeSitterParser) Language() string { return p.lang }

func (p *treeSitterParser) Extensions() []string { return p.extensions }

// Parse parses source with tree-sitter and copies the result into an owned tree.
// The tree-sitter tree is closed before returning, so the result outlives it.
func (p *treeSitterParser) Parse(ctx context.Context, source []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s source: %w", p.lang, err)
	}

	// A parser is not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set %s language: %w", p.lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", p.lang)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	root, badLine := convertTree(rootNode, source)
	if badLine > 0 {
		return nil, newSyntaxError(source, badLine)
	}

	return &syntax.Tree{Root: root, Source: source}, nil
}

// convertTree copies the tree-sitter tree rooted at root into syntax nodes,
// visiting nodes in pre-order with a cursor and an explicit parent stack.
// It also returns the line of the first offending node met, or 0: an ERROR
// or MISSING node, or an empty block. tree-sitter-python accepts a compound
// statement with no body (`def f():` at EOF, `if x:` followed by a dedent)
// by producing an empty block; that is reported on its header's line.
func convertTree(root *sitter.Node, source []byte) (*syntax.Node, int) {
	checkErrors := root.HasError()
	badLine := 0

	cursor := root.Walk()
	defer cursor.Close()

	attach := func(parent *syntax.Node) *syntax.Node {
		n := cursor.Node()
		if badLine == 0 {
			switch {
			case checkErrors && (n.IsError() || n.IsMissing()):
				badLine = int(n.StartPosition().Row) + 1
			case isEmptyBlock(n):
				badLine = parent.Line()
			}
		}
		child := nodeToSyntax(n, source)
		child.SetField(cursor.FieldName())
		parent.AddChild(child)
		return child
	}

	top := nodeToSyntax(root, source)
	if checkErrors && (root.IsError() || root.IsMissing()) {
		badLine = int(root.StartPosition().Row) + 1
	}

	var parents []*syntax.Node
	cur := top
	for {
		if cursor.GotoFirstChild() {
			parents = append(parents, cur)
			cur = attach(cur)
			continue
		}
		for {
			if len(parents) == 0 {
				return top, badLine
			}
			if cursor.GotoNextSibling() {
				cur = attach(parents[len(parents)-1])
				break
			}
			cursor.GotoParent()
			parents = parents[:len(parents)-1]
		}
	}
}

// isEmptyBlock reports a statement body with no statements in it.
func isEmptyBlock(n *sitter.Node) bool {
	return n.Kind() == "block" && (n.NamedChildCount() == 0 || n.StartByte() == n.EndByte())
}

func nodeToSyntax(n *sitter.Node, source []byte) *syntax.Node {
	return syntax.NewSpan(
		n.Kind(),
		int(n.StartPosition().Row)+1,
		source,
		int(n.StartByte()),
		int(n.EndByte()),
	)
}

// newSyntaxError builds a SyntaxError for line. Errors reported on a blank
// line or past the end of input (a block left open at EOF) are moved back to
// the last line with content.
func newSyntaxError(source []byte, line int) *SyntaxError {
	lines := strings.Split(string(source), "\n")
	if line > len(lines) {
		line = len(lines)
	}
	for line > 1 && strings.TrimSpace(lines[line-1]) == "" {
		line--
	}
	if line < 1 {
		line = 1
	}

	var excerpt string
	if len(lines) > 0 {
		excerpt = truncateRunes(strings.TrimSpace(lines[line-1]), maxExcerptRunes)
	}
	return &SyntaxError{Line: line, Excerpt: excerpt}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
