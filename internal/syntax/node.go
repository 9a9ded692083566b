package syntax

// Node is one node of an immutable syntax tree.
// Children are owned by their parent; there are no parent pointers.
type Node struct {
	kind     string
	field    string
	line     int
	src      []byte
	start    int
	end      int
	children []*Node
}

// Tree is a parsed source file.
type Tree struct {
	Root   *Node
	Source []byte
}

// New creates a node whose literal text is text.
// It is meant for tree providers and tests that build trees by hand.
func New(kind string, line int, text string, children ...*Node) *Node {
	src := []byte(text)
	return &Node{
		kind:     kind,
		line:     line,
		src:      src,
		start:    0,
		end:      len(src),
		children: children,
	}
}

// NewSpan creates a node whose text is source[start:end].
// The source slice is shared, not copied.
func NewSpan(kind string, line int, source []byte, start, end int) *Node {
	return &Node{
		kind:  kind,
		line:  line,
		src:   source,
		start: start,
		end:   end,
	}
}

// Field returns a copy of n labelled with the field name it occupies in its parent.
func Field(name string, n *Node) *Node {
	c := *n
	c.field = name
	return &c
}

// Kind returns the grammar's node kind tag.
func (n *Node) Kind() string { return n.kind }

// FieldName returns the field name the node occupies in its parent, if any.
func (n *Node) FieldName() string { return n.field }

// Line returns the 1-based line on which the node starts.
func (n *Node) Line() int { return n.line }

// Text returns the literal source text covered by the node.
func (n *Node) Text() string {
	if n == nil || n.start >= n.end {
		return ""
	}
	return string(n.src[n.start:n.end])
}

// Children returns the node's children in source order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildByField returns the first child in the named field, or nil.
func (n *Node) ChildByField(name string) *Node {
	for _, c := range n.Children() {
		if c.field == name {
			return c
		}
	}
	return nil
}

// ChildrenByField returns every child in the named field, in source order.
func (n *Node) ChildrenByField(name string) []*Node {
	var out []*Node
	for _, c := range n.Children() {
		if c.field == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOfKind returns the first direct child with the given kind, or nil.
func (n *Node) FirstChildOfKind(kind string) *Node {
	for _, c := range n.Children() {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// AddChild appends child to n. Tree providers use it while building a tree;
// nodes must not be modified after the tree is handed out.
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// SetField labels n with its field name in the parent. Same caveat as AddChild.
func (n *Node) SetField(name string) {
	n.field = name
}
