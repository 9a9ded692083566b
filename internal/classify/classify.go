package classify

import (
	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/mvp-joe/outline/internal/syntax"
)

// Category is the structural role of a syntax node.
type Category int

const (
	// Unclassified nodes do not contribute to a summary (literals, operators, ...).
	Unclassified Category = iota
	TypeDeclaration
	CallableDeclaration
	ImportDeclaration
	CallExpression
)

func (c Category) String() string {
	switch c {
	case TypeDeclaration:
		return "type"
	case CallableDeclaration:
		return "callable"
	case ImportDeclaration:
		return "import"
	case CallExpression:
		return "call"
	default:
		return "unclassified"
	}
}

// Classified is a classified node. Exactly one payload is set, chosen by Category:
// Decl for declarations, Imports for import statements, Call for calls.
type Classified struct {
	Category Category
	Decl     extraction.Declaration
	Imports  []extraction.ImportReference
	Call     extraction.CallSite
}

// Classifier maps a grammar's node kinds onto categories and extracts their payload.
type Classifier interface {
	// Category maps a node kind to its category without looking at the node.
	Category(kind string) Category

	// Classify extracts the category payload. It returns false for
	// unclassified nodes and for nodes whose payload cannot be rendered.
	Classify(n *syntax.Node) (Classified, bool)
}

// Is returns a walk predicate selecting nodes of category c.
func Is(c Classifier, cat Category) func(*syntax.Node) bool {
	return func(n *syntax.Node) bool {
		return c.Category(n.Kind()) == cat
	}
}
