package layout

// Size is a resolved (width, height) pair in cells.
type Size struct {
	Width, Height int
}

// MeasureFunc reports a leaf node's intrinsic size given the space
// available to it. Text components use this to report wrapped dimensions
// for a given available width.
type MeasureFunc func(available Size) Size

// Node is one entry in the layout tree: a thin adapter carrying style plus
// an optional measure function, parented the same way the component tree
// it mirrors is parented.
//
// A node may declare itself Transparent, meaning it contributes no box of
// its own — its children are laid out as if they were direct children of
// its parent. Fragment-style wrapper components use this.
type Node struct {
	id          int
	Style       Style
	Measure     MeasureFunc
	Transparent bool

	parent   *Node
	children []*Node
}

// Tree owns the set of live nodes, indexed by opaque id, mirroring the
// component tree one-for-one. A component instance holds a direct pointer
// to its node; a node holds no reference back to its instance, so the two
// form no cycle. The id index is what Count and Detach maintain.
type Tree struct {
	nodes  map[int]*Node
	nextID int
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[int]*Node)}
}

// NewNode creates a node appended as parent's last child and returns it.
// Pass a nil parent for the tree's single root.
func (t *Tree) NewNode(parent *Node) *Node {
	t.nextID++
	n := &Node{id: t.nextID, Style: DefaultStyle(), parent: parent}
	t.nodes[n.id] = n
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return n
}

// Detach removes a node and its entire subtree from the tree.
func (t *Tree) Detach(n *Node) {
	if n == nil {
		return
	}
	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	t.removeSubtree(n)
}

func (t *Tree) removeSubtree(n *Node) {
	for _, c := range n.children {
		t.removeSubtree(c)
	}
	delete(t.nodes, n.id)
}

// Reparent moves an existing node under a new parent, preserving its
// subtree and appending it as the new parent's last child.
func (t *Tree) Reparent(n, newParent *Node) {
	if n.parent != nil {
		siblings := n.parent.children
		for i, c := range siblings {
			if c == n {
				n.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
	}
	n.parent = newParent
	if newParent != nil {
		newParent.children = append(newParent.children, n)
	}
}

// SetChildrenOrder replaces parent's child order wholesale with children,
// which must already be parent's existing children (just possibly in a
// new order) — used by the reconciler after a sync pass to make the
// layout tree's child order match the declaration order the component
// tree just reconciled against, since a recycled instance's node keeps
// whatever position it was first created at otherwise.
func (t *Tree) SetChildrenOrder(parent *Node, children []*Node) {
	if parent == nil {
		return
	}
	parent.children = append([]*Node(nil), children...)
}

// ID returns the node's opaque identifier.
func (n *Node) ID() int { return n.id }

// Children returns the node's layout children in order.
func (n *Node) Children() []*Node { return n.children }

// Count returns the number of live nodes, for invariant checks in tests
// (layout-tree parity: node count must equal component instance count).
func (t *Tree) Count() int { return len(t.nodes) }
