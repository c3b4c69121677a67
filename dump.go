package rtree

import (
	"fmt"
	"strings"
)

const dumpIndent = "   "

// String gives an indented dump of the tree: one line per node with its
// bounds, and one line per leaf entry.
func (t *RTree[T]) String() string {
	if t.root == noNode {
		return "empty rtree"
	}
	var sb strings.Builder
	var recurse func(NodeID, string)
	recurse = func(id NodeID, margin string) {
		n := t.node(id)
		kind := "inner"
		if n.isLeaf {
			kind = "leaf"
		}
		fmt.Fprintf(&sb, "%s%s node=%d bounds=%v size=%d\n", margin, kind, id, n.bounds, n.size())
		if n.isLeaf {
			for _, e := range n.entries {
				fmt.Fprintf(&sb, "%s%v->%v\n", margin+dumpIndent, e.Element, e.Rect)
			}
			return
		}
		for _, c := range n.children {
			recurse(c, margin+dumpIndent)
		}
	}
	recurse(t.root, "")
	return sb.String()
}
