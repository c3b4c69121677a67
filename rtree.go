// Package rtree is an in-memory spatial index mapping axis-aligned bounding
// rectangles to elements. Either the classic quadratic R-tree rules or the
// R*-tree rules can be used; the choice is made by the Strategy passed to
// each mutating call.
//
// An RTree is not safe for concurrent use. Mutations must not overlap each
// other or any query on the same tree.
package rtree

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RTree is an in-memory R-Tree. Nodes are kept in an arena and refer to
// their parent by NodeID. Its zero value is an empty R-Tree.
type RTree[T comparable] struct {
	nodes []node[T] // 1-indexed, allowing 0 to represent "nil"
	free  []NodeID
	root  NodeID

	// where maps each element to the leaf holding it.
	where map[T]NodeID

	// capacity is fixed by WithCapacity, or by the first insertion into an
	// empty tree. The zero value means no capacity has been chosen yet.
	capacity      Capacity
	fixedCapacity bool

	logger           *zap.Logger
	instruments      instruments
	reinsertFraction float64
	gravityCenter    bool
	counters         counters
}

// Option configures an RTree created by New or BulkLoad.
type Option func(*options)

type options struct {
	capacity         Capacity
	logger           *zap.Logger
	meter            metric.Meter
	reinsertFraction float64
	gravityCenter    bool
}

// WithCapacity fixes the node capacity of the tree for its whole life.
// Without it, the capacity of the first strategy used to insert into the
// empty tree is kept until the tree is empty again. Mutating calls whose
// strategy has a different capacity are rejected with ErrInvalidCapacity.
func WithCapacity(c Capacity) Option {
	return func(o *options) { o.capacity = c }
}

// WithLogger sets the logger used for debug records about splits, pruning
// and reinsertion. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMeter sets the OpenTelemetry meter used to count inserts, removals,
// splits and reinsertions. The default is a no-op meter.
func WithMeter(meter metric.Meter) Option {
	return func(o *options) { o.meter = meter }
}

// WithReinsertFraction sets the share of each leaf's entries evicted by
// Reinsert. Values outside (0, 1] are ignored. The default is 0.3.
func WithReinsertFraction(fraction float64) Option {
	return func(o *options) {
		if fraction > 0 && fraction <= 1 {
			o.reinsertFraction = fraction
		}
	}
}

// WithGravityCenter makes Reinsert measure distances from the mean of each
// leaf's entry centres instead of the centre of the leaf's bounds.
func WithGravityCenter() Option {
	return func(o *options) { o.gravityCenter = true }
}

const defaultReinsertFraction = 0.3

var nopLogger = zap.NewNop()

// New creates an empty RTree.
func New[T comparable](opts ...Option) *RTree[T] {
	o := options{reinsertFraction: defaultReinsertFraction}
	for _, opt := range opts {
		opt(&o)
	}
	t := &RTree[T]{
		where:            make(map[T]NodeID),
		logger:           o.logger,
		reinsertFraction: o.reinsertFraction,
		gravityCenter:    o.gravityCenter,
	}
	if o.capacity != (Capacity{}) {
		t.capacity = o.capacity
		t.fixedCapacity = true
	}
	if o.meter != nil {
		in, err := newInstruments(o.meter)
		if err != nil {
			t.log().Warn("could not create rtree instruments", zap.Error(err))
		} else {
			t.instruments = in
		}
	}
	return t
}

func (t *RTree[T]) log() *zap.Logger {
	if t.logger == nil {
		return nopLogger
	}
	return t.logger
}

// checkStrategy validates s and checks that its capacity is the one the tree
// was built with.
func (t *RTree[T]) checkStrategy(s Strategy) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if t.capacity != (Capacity{}) && s.Capacity != t.capacity {
		return fmt.Errorf("%w: strategy capacity %+v does not match tree capacity %+v",
			ErrInvalidCapacity, s.Capacity, t.capacity)
	}
	return nil
}

// Capacity gives the node capacity the tree is built with. It is false when
// no capacity has been chosen yet.
func (t *RTree[T]) Capacity() (Capacity, bool) {
	return t.capacity, t.capacity != (Capacity{})
}

// Count gives the number of elements in the tree.
func (t *RTree[T]) Count() int {
	return len(t.where)
}

// Empty reports whether the tree holds no elements.
func (t *RTree[T]) Empty() bool {
	return t.root == noNode
}

// Lookup gives the rectangle an element was stored with.
func (t *RTree[T]) Lookup(element T) (Rect, bool) {
	leaf, ok := t.where[element]
	if !ok {
		return Rect{}, false
	}
	for _, e := range t.node(leaf).entries {
		if e.Element == element {
			return e.Rect, true
		}
	}
	return Rect{}, false
}

// Extent gives the Rect that most closely bounds the tree. If the tree is
// empty, then false is returned.
func (t *RTree[T]) Extent() (Rect, bool) {
	if t.root == noNode {
		return Rect{}, false
	}
	return t.node(t.root).bounds, true
}

// Height gives the number of levels of nodes in the tree, zero when empty.
func (t *RTree[T]) Height() int {
	if t.root == noNode {
		return 0
	}
	h := 1
	for n := t.node(t.root); !n.isLeaf; n = t.node(n.children[0]) {
		h++
	}
	return h
}

// Pick finds an element whose rectangle contains p. When several do, the
// first one met in traversal order wins.
func (t *RTree[T]) Pick(p orb.Point) (T, bool) {
	var zero T
	if t.root == noNode {
		return zero, false
	}
	var recurse func(NodeID) (T, bool)
	recurse = func(id NodeID) (T, bool) {
		n := t.node(id)
		if !n.bounds.ContainsPoint(p) {
			return zero, false
		}
		if n.isLeaf {
			for _, e := range n.entries {
				if e.Rect.ContainsPoint(p) {
					return e.Element, true
				}
			}
			return zero, false
		}
		for _, c := range n.children {
			if elem, ok := recurse(c); ok {
				return elem, true
			}
		}
		return zero, false
	}
	return recurse(t.root)
}

// Stop is a special sentinel error that can be used to stop a search
// operation without any error.
var Stop = errors.New("stop")

// Search looks for any elements in the tree whose rectangles intersect the
// given shape. The callback is called for each one found. If an error is
// returned from the callback then the search is terminated early. Any error
// returned from the callback is returned by Search, except for the case where
// the special Stop sentinel error is returned (in which case nil will be
// returned from Search).
func (t *RTree[T]) Search(shape Rect, callback func(element T, r Rect) error) error {
	if t.root == noNode {
		return nil
	}
	var recurse func(NodeID) error
	recurse = func(id NodeID) error {
		n := t.node(id)
		if n.isLeaf {
			for _, e := range n.entries {
				if !e.Rect.Intersects(shape) {
					continue
				}
				if err := callback(e.Element, e.Rect); err != nil {
					return err
				}
			}
			return nil
		}
		for _, c := range n.children {
			if !t.node(c).bounds.Intersects(shape) {
				continue
			}
			if err := recurse(c); err != nil {
				return err
			}
		}
		return nil
	}
	if !t.node(t.root).bounds.Intersects(shape) {
		return nil
	}
	if err := recurse(t.root); err != nil && err != Stop {
		return err
	}
	return nil
}

// VisibleElements gives every element whose rectangle intersects shape.
// Each element appears once.
func (t *RTree[T]) VisibleElements(shape Rect) []T {
	var found []T
	_ = t.Search(shape, func(element T, _ Rect) error {
		found = append(found, element)
		return nil
	})
	return found
}

// NodeInfo describes one node of the tree for diagnostics and
// visualisation.
type NodeInfo struct {
	ID     NodeID
	Parent NodeID // zero for the root
	Bounds Rect
	Leaf   bool
	Size   int // entries for a leaf, children otherwise
	Depth  int // zero for the root
}

func (t *RTree[T]) info(id NodeID, depth int) NodeInfo {
	n := t.node(id)
	return NodeInfo{
		ID:     id,
		Parent: n.parent,
		Bounds: n.bounds,
		Leaf:   n.isLeaf,
		Size:   n.size(),
		Depth:  depth,
	}
}

// ContainingLeaves gives the leaf nodes whose bounds contain p.
func (t *RTree[T]) ContainingLeaves(p orb.Point) []NodeInfo {
	var leaves []NodeInfo
	t.Walk(func(ni NodeInfo) bool {
		if !ni.Bounds.ContainsPoint(p) {
			return false
		}
		if ni.Leaf {
			leaves = append(leaves, ni)
		}
		return true
	})
	return leaves
}

// Walk visits the nodes of the tree depth first, parents before children.
// Returning false from fn skips the children of that node.
func (t *RTree[T]) Walk(fn func(NodeInfo) bool) {
	if t.root == noNode {
		return
	}
	var recurse func(NodeID, int)
	recurse = func(id NodeID, depth int) {
		if !fn(t.info(id, depth)) {
			return
		}
		n := t.node(id)
		if n.isLeaf {
			return
		}
		for _, c := range n.children {
			recurse(c, depth+1)
		}
	}
	recurse(t.root, 0)
}

// Grid gives the bounds of every node in the tree.
func (t *RTree[T]) Grid() []Rect {
	var grid []Rect
	t.Walk(func(ni NodeInfo) bool {
		grid = append(grid, ni.Bounds)
		return true
	})
	return grid
}

// Entries gives every element in the tree with its rectangle, in traversal
// order.
func (t *RTree[T]) Entries() []Entry[T] {
	entries := make([]Entry[T], 0, t.Count())
	for _, leaf := range t.leaves() {
		entries = append(entries, t.node(leaf).entries...)
	}
	return entries
}

// leaves gives the leaf nodes in traversal order.
func (t *RTree[T]) leaves() []NodeID {
	var leaves []NodeID
	t.Walk(func(ni NodeInfo) bool {
		if ni.Leaf {
			leaves = append(leaves, ni.ID)
		}
		return true
	})
	return leaves
}
