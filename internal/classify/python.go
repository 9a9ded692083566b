package classify

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/mvp-joe/outline/internal/syntax"
)

// DefaultMaxCalleeLength bounds rendered callee text, in runes.
const DefaultMaxCalleeLength = 120

var pythonKinds = map[string]Category{
	"class_definition":        TypeDeclaration,
	"function_definition":     CallableDeclaration,
	"import_statement":        ImportDeclaration,
	"import_from_statement":   ImportDeclaration,
	"future_import_statement": ImportDeclaration,
	"call":                    CallExpression,
}

// PythonClassifier classifies tree-sitter-python nodes.
type PythonClassifier struct {
	maxCalleeLength int
}

// Option configures a PythonClassifier.
type Option func(*PythonClassifier)

// WithMaxCalleeLength sets the longest callee rendering kept; longer ones are dropped.
// Values below 1 keep the default.
func WithMaxCalleeLength(n int) Option {
	return func(p *PythonClassifier) {
		if n > 0 {
			p.maxCalleeLength = n
		}
	}
}

// NewPython creates a classifier for the tree-sitter-python grammar.
func NewPython(opts ...Option) *PythonClassifier {
	p := &PythonClassifier{maxCalleeLength: DefaultMaxCalleeLength}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Category implements Classifier.
func (p *PythonClassifier) Category(kind string) Category {
	return pythonKinds[kind]
}

// Classify implements Classifier.
func (p *PythonClassifier) Classify(n *syntax.Node) (Classified, bool) {
	if n == nil {
		return Classified{}, false
	}

	switch cat := p.Category(n.Kind()); cat {
	case TypeDeclaration, CallableDeclaration:
		name := n.ChildByField("name")
		if name == nil {
			return Classified{}, false
		}
		return Classified{
			Category: cat,
			Decl:     extraction.Declaration{Name: name.Text(), Line: n.Line()},
		}, true

	case ImportDeclaration:
		refs := p.importReferences(n)
		if len(refs) == 0 {
			return Classified{}, false
		}
		return Classified{Category: cat, Imports: refs}, true

	case CallExpression:
		fn := n.ChildByField("function")
		if fn == nil {
			return Classified{}, false
		}
		callee := p.renderCallee(fn)
		if callee == "" {
			return Classified{}, false
		}
		return Classified{
			Category: cat,
			Call:     extraction.CallSite{Callee: callee, Line: n.Line()},
		}, true

	default:
		return Classified{}, false
	}
}

// importReferences expands one import statement into a reference per imported name.
func (p *PythonClassifier) importReferences(n *syntax.Node) []extraction.ImportReference {
	var module string
	switch n.Kind() {
	case "import_statement":
		// import a.b, c as d
	case "future_import_statement":
		module = "__future__"
	case "import_from_statement":
		module = moduleName(n.ChildByField("module_name"))
	}

	var refs []extraction.ImportReference
	add := func(name string, line int) {
		if name == "" {
			return
		}
		path := name
		if module != "" {
			path = module + "." + name
		}
		refs = append(refs, extraction.ImportReference{Path: path, Line: line})
	}

	for _, c := range n.ChildrenByField("name") {
		add(importedName(c), c.Line())
	}
	if w := n.FirstChildOfKind("wildcard_import"); w != nil {
		add("*", w.Line())
	}
	return refs
}

// moduleName renders the module of a from-import. Relative imports keep only
// their dotted part, so "from . import x" has no module at all.
func moduleName(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind() == "relative_import" {
		return dotted(n.FirstChildOfKind("dotted_name"))
	}
	return dotted(n)
}

// importedName returns the name as written, ignoring any "as" alias.
func importedName(n *syntax.Node) string {
	if n.Kind() == "aliased_import" {
		return dotted(n.ChildByField("name"))
	}
	return dotted(n)
}

func dotted(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	return strings.Join(strings.Fields(n.Text()), "")
}

// renderCallee renders the invoked expression. Attribute chains become
// "receiver.a.b" in full; a receiver that is not a plain name keeps its
// literal text, which is dropped when empty or longer than maxCalleeLength.
// An empty result means the callee could not be rendered.
func (p *PythonClassifier) renderCallee(n *syntax.Node) string {
	var attrs []string
	cur := n
	for cur.Kind() == "attribute" {
		obj := cur.ChildByField("object")
		attr := cur.ChildByField("attribute")
		if obj == nil || attr == nil {
			return ""
		}
		attrs = append(attrs, attr.Text())
		cur = obj
	}

	var base string
	if cur.Kind() == "identifier" {
		base = cur.Text()
	} else {
		base = literal(cur)
		if utf8.RuneCountInString(base) > p.maxCalleeLength {
			return ""
		}
	}
	if base == "" {
		return ""
	}

	slices.Reverse(attrs)
	return strings.Join(append([]string{base}, attrs...), ".")
}

// literal is the node's source text with whitespace runs collapsed.
func literal(n *syntax.Node) string {
	return strings.Join(strings.Fields(n.Text()), " ")
}
