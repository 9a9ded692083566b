package summary

import (
	"iter"

	"github.com/mvp-joe/outline/internal/classify"
	"github.com/mvp-joe/outline/internal/extraction"
	"github.com/mvp-joe/outline/internal/syntax"
)

// Build derives the structural summary of the tree rooted at root.
// Each category keeps at most limit entries; a negative limit is treated as zero.
//
// The call list is taken from the first callable in traversal order, walking
// only that callable's own subtree.
func Build(root *syntax.Node, c classify.Classifier, limit int) *extraction.Summary {
	s := &extraction.Summary{
		Types:     extraction.Capped(declarations(root, c, classify.TypeDeclaration), limit),
		Callables: extraction.Capped(declarations(root, c, classify.CallableDeclaration), limit),
		Imports:   extraction.Capped(imports(root, c), limit),
	}

	targetNode, target := firstCallable(root, c)
	if targetNode == nil {
		s.CallsInTarget = extraction.CappedList[extraction.CallSite]{Shown: []extraction.CallSite{}}
		return s
	}
	s.Target = &target
	s.CallsInTarget = extraction.Capped(calls(targetNode, c), limit)
	return s
}

// classified yields the payload of every node of category cat, skipping
// nodes the classifier declines.
func classified(root *syntax.Node, c classify.Classifier, cat classify.Category) iter.Seq2[*syntax.Node, classify.Classified] {
	return func(yield func(*syntax.Node, classify.Classified) bool) {
		for n := range syntax.WalkWhere(root, classify.Is(c, cat)) {
			cl, ok := c.Classify(n)
			if !ok {
				continue
			}
			if !yield(n, cl) {
				return
			}
		}
	}
}

func declarations(root *syntax.Node, c classify.Classifier, cat classify.Category) iter.Seq[extraction.Declaration] {
	return func(yield func(extraction.Declaration) bool) {
		for _, cl := range classified(root, c, cat) {
			if !yield(cl.Decl) {
				return
			}
		}
	}
}

// imports flattens import statements into their individual references.
func imports(root *syntax.Node, c classify.Classifier) iter.Seq[extraction.ImportReference] {
	return func(yield func(extraction.ImportReference) bool) {
		for _, cl := range classified(root, c, classify.ImportDeclaration) {
			for _, ref := range cl.Imports {
				if !yield(ref) {
					return
				}
			}
		}
	}
}

func calls(root *syntax.Node, c classify.Classifier) iter.Seq[extraction.CallSite] {
	return func(yield func(extraction.CallSite) bool) {
		for _, cl := range classified(root, c, classify.CallExpression) {
			if !yield(cl.Call) {
				return
			}
		}
	}
}

func firstCallable(root *syntax.Node, c classify.Classifier) (*syntax.Node, extraction.Declaration) {
	for n, cl := range classified(root, c, classify.CallableDeclaration) {
		return n, cl.Decl
	}
	return nil, extraction.Declaration{}
}
