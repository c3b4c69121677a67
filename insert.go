package rtree

import (
	"fmt"

	"go.uber.org/zap"
)

// Insert adds an element to the RTree using the given strategy. Inserting
// an element that is already present replaces its rectangle. The strategy's
// capacity must match the tree's, see WithCapacity.
func (t *RTree[T]) Insert(s Strategy, element T, r Rect) error {
	if err := t.checkStrategy(s); err != nil {
		return err
	}
	if err := r.validate(); err != nil {
		return err
	}
	t.insert(s, element, r)
	t.countInsert()
	return nil
}

func (t *RTree[T]) insert(s Strategy, element T, r Rect) {
	if t.where == nil {
		t.where = make(map[T]NodeID)
	}
	if leaf, ok := t.where[element]; ok {
		t.removeFrom(leaf, element)
	}

	if t.root == noNode {
		if t.capacity == (Capacity{}) {
			t.capacity = s.Capacity
		}
		t.root = t.alloc(node[T]{
			isLeaf:  true,
			bounds:  r,
			entries: []Entry[T]{{Element: element, Rect: r}},
		})
		t.where[element] = t.root
		return
	}

	leaf := t.chooseLeafNode(s, r)
	n := t.node(leaf)
	n.entries = append(n.entries, Entry[T]{Element: element, Rect: r})
	t.where[element] = leaf

	if len(n.entries) <= s.Capacity.Max {
		return
	}
	t.adjustTree(s, leaf)
}

// chooseLeafNode descends from the root to the leaf that should receive r,
// growing the bounds of every node on the way.
func (t *RTree[T]) chooseLeafNode(s Strategy, r Rect) NodeID {
	id := t.root
	for {
		n := t.node(id)
		n.bounds = n.bounds.Union(r)
		if n.isLeaf {
			return id
		}
		candidates := make([]Candidate, len(n.children))
		for i, c := range n.children {
			child := t.node(c)
			candidates[i] = Candidate{Bounds: child.bounds, Size: child.size()}
		}
		i := s.Chooser.ChooseSubtree(candidates, n.leafChildren, r)
		if i < 0 || i >= len(n.children) {
			panic(fmt.Errorf("%w: subtree chooser picked child %d of %d", ErrStructural, i, len(n.children)))
		}
		id = n.children[i]
	}
}

// adjustTree splits the overflowing node n, then keeps splitting ancestors
// that overflow from receiving the new sibling. A split of the root grows the
// tree by one level.
func (t *RTree[T]) adjustTree(s Strategy, n NodeID) {
	for t.node(n).size() > s.Capacity.Max {
		nn := t.splitNode(s, n)
		parent := t.node(n).parent
		if parent == noNode {
			t.joinRoots(n, nn)
			return
		}
		// The two halves cover exactly what n covered, so the parent's
		// bounds are already correct.
		p := t.node(parent)
		p.children = append(p.children, nn)
		t.node(nn).parent = parent
		n = parent
	}
}

func (t *RTree[T]) joinRoots(r1, r2 NodeID) {
	root := t.alloc(node[T]{
		leafChildren: t.node(r1).isLeaf,
		children:     []NodeID{r1, r2},
	})
	t.node(r1).parent = root
	t.node(r2).parent = root
	t.recalculateBound(root)
	t.root = root
	t.log().Debug("grew new root", zap.Int("root", int(root)), zap.Int("height", t.Height()))
}

// splitNode splits node n into two nodes. The first group replaces the
// contents of n, and the second group goes into a newly created node. The
// return value is the new node. The split is validated before anything is
// modified.
func (t *RTree[T]) splitNode(s Strategy, n NodeID) NodeID {
	rects := t.itemRects(n)
	isLeaf := t.node(n).isLeaf
	splitter := s.Inner
	if isLeaf {
		splitter = s.Leaf
	}
	left, right := splitter.Split(rects, s.Capacity)
	checkPartition(len(rects), left, right, s.Capacity)

	var nn NodeID
	if isLeaf {
		entries := t.node(n).entries
		entriesA := make([]Entry[T], len(left))
		entriesB := make([]Entry[T], len(right))
		for i, idx := range left {
			entriesA[i] = entries[idx]
		}
		for i, idx := range right {
			entriesB[i] = entries[idx]
		}
		t.node(n).entries = entriesA
		nn = t.alloc(node[T]{isLeaf: true, entries: entriesB})
		for _, e := range entriesB {
			t.where[e.Element] = nn
		}
	} else {
		children := t.node(n).children
		childrenA := make([]NodeID, len(left))
		childrenB := make([]NodeID, len(right))
		for i, idx := range left {
			childrenA[i] = children[idx]
		}
		for i, idx := range right {
			childrenB[i] = children[idx]
		}
		t.node(n).children = childrenA
		nn = t.alloc(node[T]{leafChildren: t.node(n).leafChildren, children: childrenB})
		for _, c := range childrenB {
			t.node(c).parent = nn
		}
	}
	t.recalculateBound(n)
	t.recalculateBound(nn)
	t.countSplit(isLeaf)
	t.log().Debug("split node",
		zap.Bool("leaf", isLeaf),
		zap.Int("node", int(n)),
		zap.Int("sibling", int(nn)),
		zap.Int("left", len(left)),
		zap.Int("right", len(right)),
	)
	return nn
}
