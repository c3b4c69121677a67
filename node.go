package rtree

import "fmt"

// NodeID identifies a node within a tree. The zero value means "no node".
type NodeID int

const noNode NodeID = 0

// Entry is an element stored in the tree together with its bounding
// rectangle.
type Entry[T comparable] struct {
	Element T
	Rect    Rect
}

// node is a node in an R-Tree. Leaf nodes hold entries for elements, inner
// nodes hold child nodes. The children of an inner node are either all leaves
// or all inner nodes, recorded by leafChildren.
type node[T comparable] struct {
	parent NodeID
	bounds Rect
	isLeaf bool

	entries []Entry[T] // leaf only

	children     []NodeID // inner only
	leafChildren bool
}

func (n *node[T]) size() int {
	if n.isLeaf {
		return len(n.entries)
	}
	return len(n.children)
}

// node converts a 1-indexed NodeID into a node pointer. The pointer is only
// valid until the next allocation.
func (t *RTree[T]) node(id NodeID) *node[T] {
	return &t.nodes[id-1]
}

func (t *RTree[T]) alloc(n node[T]) NodeID {
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		*t.node(id) = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes))
}

func (t *RTree[T]) release(id NodeID) {
	*t.node(id) = node[T]{}
	t.free = append(t.free, id)
}

// itemRects gives the rectangles of a node's entries or children, in order.
func (t *RTree[T]) itemRects(id NodeID) []Rect {
	n := t.node(id)
	rects := make([]Rect, 0, n.size())
	if n.isLeaf {
		for _, e := range n.entries {
			rects = append(rects, e.Rect)
		}
		return rects
	}
	for _, c := range n.children {
		rects = append(rects, t.node(c).bounds)
	}
	return rects
}

// recalculateBound recomputes the bounding box of a non-empty node from its
// entries or children.
func (t *RTree[T]) recalculateBound(id NodeID) {
	t.node(id).bounds = combine(t.itemRects(id))
}

// detach removes child from the children of its parent.
func (t *RTree[T]) detach(parent, child NodeID) {
	p := t.node(parent)
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
	panic(fmt.Errorf("%w: node %d is not a child of its parent %d", ErrStructural, child, parent))
}
