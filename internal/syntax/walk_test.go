package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Walk:
// - Pre-order: parent before children, siblings in source order
// - Walking twice yields the same order
// - Breaking out of the range stops the walk
// - WalkWhere filters without reordering
// - Nil root yields nothing
// - Deep nesting does not overflow the stack
// - Field helpers find labelled children

func sampleTree() *Node {
	// module
	//   class A (1)
	//     def f (2)
	//       call g (3)
	//   def h (5)
	return New("module", 1, "",
		New("class_definition", 1, "",
			New("function_definition", 2, "",
				New("call", 3, "g()"),
			),
		),
		New("function_definition", 5, ""),
	)
}

func kinds(seq func(func(*Node) bool)) []string {
	var out []string
	for n := range seq {
		out = append(out, n.Kind())
	}
	return out
}

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	got := kinds(Walk(sampleTree()))
	assert.Equal(t, []string{"module", "class_definition", "function_definition", "call", "function_definition"}, got)
}

func TestWalk_Restartable(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	seq := Walk(root)

	first := kinds(seq)
	second := kinds(seq)
	assert.Equal(t, first, second)
	assert.Equal(t, first, kinds(Walk(root)))
}

func TestWalk_EarlyBreak(t *testing.T) {
	t.Parallel()

	count := 0
	for range Walk(sampleTree()) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestWalkWhere_KeepsOrder(t *testing.T) {
	t.Parallel()

	var lines []int
	for n := range WalkWhere(sampleTree(), OfKind("function_definition", "call")) {
		lines = append(lines, n.Line())
	}
	assert.Equal(t, []int{2, 3, 5}, lines)
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	assert.Empty(t, kinds(Walk(nil)))
}

func TestWalk_DeepNesting(t *testing.T) {
	t.Parallel()

	const depth = 200000
	root := New("expr", 1, "")
	cur := root
	for i := 0; i < depth; i++ {
		child := New("expr", 1, "")
		cur.AddChild(child)
		cur = child
	}

	count := 0
	for range Walk(root) {
		count++
	}
	assert.Equal(t, depth+1, count)
}

func TestNode_FieldLookup(t *testing.T) {
	t.Parallel()

	n := New("import_statement", 1, "import a, b",
		New("import", 1, "import"),
		Field("name", New("dotted_name", 1, "a")),
		New(",", 1, ","),
		Field("name", New("dotted_name", 1, "b")),
	)

	first := n.ChildByField("name")
	require.NotNil(t, first)
	assert.Equal(t, "a", first.Text())

	all := n.ChildrenByField("name")
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[1].Text())

	assert.Nil(t, n.ChildByField("alias"))
	assert.Equal(t, "import", n.FirstChildOfKind("import").Text())
}

func TestNewSpan_SharesSource(t *testing.T) {
	t.Parallel()

	src := []byte("x = foo(1)")
	n := NewSpan("call", 1, src, 4, 10)
	assert.Equal(t, "foo(1)", n.Text())

	empty := NewSpan("module", 1, src, 0, 0)
	assert.Equal(t, "", empty.Text())
}
