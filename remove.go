package rtree

import "go.uber.org/zap"

// Remove deletes an element from the tree. The returned bool indicates
// whether or not the element was present; removing an absent element leaves
// the tree unchanged.
//
// Nodes left empty are pruned, and the pruning cascades up through
// ancestors that become empty in turn. Nodes that merely drop below the
// minimum capacity are kept as they are.
func (t *RTree[T]) Remove(element T) bool {
	leaf, ok := t.where[element]
	if !ok {
		return false
	}
	t.removeFrom(leaf, element)
	t.countRemoval()
	return true
}

func (t *RTree[T]) removeFrom(leaf NodeID, element T) {
	n := t.node(leaf)
	for i, e := range n.entries {
		if e.Element == element {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			break
		}
	}
	delete(t.where, element)
	t.condenseTree(leaf)
}

// condenseTree walks from a leaf up to the root, detaching nodes that have
// become empty and recalculating the bounds of the rest.
func (t *RTree[T]) condenseTree(id NodeID) {
	for id != noNode {
		n := t.node(id)
		parent := n.parent
		if n.size() == 0 {
			if parent == noNode {
				t.root = noNode
			} else {
				t.detach(parent, id)
			}
			t.log().Debug("pruned empty node", zap.Int("node", int(id)), zap.Bool("leaf", n.isLeaf))
			t.release(id)
		} else {
			t.recalculateBound(id)
		}
		id = parent
	}
	if t.root == noNode {
		t.nodes = t.nodes[:0]
		t.free = t.free[:0]
		if !t.fixedCapacity {
			t.capacity = Capacity{}
		}
		t.log().Debug("tree is now empty")
	}
}
