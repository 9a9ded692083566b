package syntax

import "iter"

// Walk returns a pre-order, depth-first sequence over the tree rooted at root.
// A parent is yielded before its children and siblings keep source order.
// Every range over the returned sequence starts again from root.
//
// The walk keeps its own stack, so nesting depth in the source does not
// grow the goroutine stack.
func Walk(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if root == nil {
			return
		}
		stack := []*Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			// Push in reverse so the leftmost child is popped first.
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}

// WalkWhere is Walk restricted to nodes for which keep returns true.
// Traversal order is unchanged.
func WalkWhere(root *Node, keep func(*Node) bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range Walk(root) {
			if keep(n) && !yield(n) {
				return
			}
		}
	}
}

// OfKind returns a predicate matching nodes whose kind is one of kinds.
func OfKind(kinds ...string) func(*Node) bool {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return func(n *Node) bool {
		return set[n.kind]
	}
}
