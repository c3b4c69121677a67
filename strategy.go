package rtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRectangle is returned when a rectangle with a negative extent
	// or a non-finite component is offered to the tree.
	ErrInvalidRectangle = errors.New("rtree: invalid rectangle")

	// ErrInvalidCapacity is returned for node size parameters that can't
	// produce valid splits.
	ErrInvalidCapacity = errors.New("rtree: invalid capacity")

	// ErrInvalidStrategy is returned when a Strategy is missing one of its
	// parts.
	ErrInvalidStrategy = errors.New("rtree: invalid strategy")

	// ErrStructural is wrapped by the value of every panic raised when the
	// tree detects a broken structural invariant. It indicates a defect, either
	// in the tree or in a user supplied Splitter or SubtreeChooser.
	ErrStructural = errors.New("rtree: structural violation")
)

// Capacity holds the node size parameters. Max is the most entries (or
// children) a node may hold. Min only steers how splits distribute entries;
// nodes are allowed to drop below it after removals.
type Capacity struct {
	Min int
	Max int
}

// NewCapacity creates a Capacity with the given node size parameters.
func NewCapacity(minEntries, maxEntries int) (Capacity, error) {
	if maxEntries < 2 {
		return Capacity{}, fmt.Errorf("%w: max entries must be at least 2, got %d", ErrInvalidCapacity, maxEntries)
	}
	if minEntries < 1 || minEntries > maxEntries/2 {
		return Capacity{}, fmt.Errorf("%w: min entries must be between 1 and half of max (%d), got %d",
			ErrInvalidCapacity, maxEntries/2, minEntries)
	}
	return Capacity{Min: minEntries, Max: maxEntries}, nil
}

// CapacityForMax creates a Capacity whose minimum is 40% of maxEntries
// (rounded down, but at least 1).
func CapacityForMax(maxEntries int) (Capacity, error) {
	minEntries := maxEntries * 4 / 10
	if minEntries < 1 {
		minEntries = 1
	}
	return NewCapacity(minEntries, maxEntries)
}

// DefaultCapacity is 10 entries per node with a split target of 4.
func DefaultCapacity() Capacity {
	return Capacity{Min: 4, Max: 10}
}

func (c Capacity) validate() error {
	_, err := NewCapacity(c.Min, c.Max)
	return err
}

// Splitter partitions the rectangles of an overflowing node into two groups.
// The returned slices hold indexes into rects; together they must name every
// index exactly once, and each must be non-empty and hold no more than
// c.Max indexes.
type Splitter interface {
	Split(rects []Rect, c Capacity) (left, right []int)
}

// Candidate describes a child node considered while choosing where to
// descend during insertion.
type Candidate struct {
	Bounds Rect
	Size   int
}

// SubtreeChooser picks which of the children an insertion of r descends
// into. leafChildren is true when the children are leaf nodes. The result is
// an index into children.
type SubtreeChooser interface {
	ChooseSubtree(children []Candidate, leafChildren bool, r Rect) int
}

// Strategy bundles the rules used by mutating operations: how leaves and
// inner nodes split, how insertion picks a subtree, and the node capacity.
type Strategy struct {
	Leaf     Splitter
	Inner    Splitter
	Chooser  SubtreeChooser
	Capacity Capacity
}

// QuadraticStrategy gives the classic R-tree rules: quadratic splits and
// least enlargement subtree selection.
func QuadraticStrategy(c Capacity) Strategy {
	return Strategy{
		Leaf:     QuadraticSplitter{},
		Inner:    QuadraticSplitter{},
		Chooser:  LeastEnlargement{},
		Capacity: c,
	}
}

// RStarStrategy gives the R*-tree rules: margin/overlap driven splits and
// overlap aware subtree selection above the leaves.
func RStarStrategy(c Capacity) Strategy {
	return Strategy{
		Leaf:     RStarSplitter{},
		Inner:    RStarSplitter{},
		Chooser:  RStarChooser{},
		Capacity: c,
	}
}

// Validate checks that every part of the strategy is present and that its
// capacity is usable.
func (s Strategy) Validate() error {
	if s.Leaf == nil || s.Inner == nil || s.Chooser == nil {
		return fmt.Errorf("%w: leaf splitter, inner splitter and subtree chooser are all required", ErrInvalidStrategy)
	}
	return s.Capacity.validate()
}

// checkPartition panics unless left and right form a valid split of n items.
func checkPartition(n int, left, right []int, c Capacity) {
	if len(left) == 0 || len(right) == 0 {
		panic(fmt.Errorf("%w: split of %d items produced an empty group", ErrStructural, n))
	}
	if len(left) > c.Max || len(right) > c.Max {
		panic(fmt.Errorf("%w: split of %d items produced groups of %d and %d (max %d)",
			ErrStructural, n, len(left), len(right), c.Max))
	}
	seen := make([]bool, n)
	for _, group := range [2][]int{left, right} {
		for _, i := range group {
			if i < 0 || i >= n || seen[i] {
				panic(fmt.Errorf("%w: split of %d items is not a partition", ErrStructural, n))
			}
			seen[i] = true
		}
	}
	if len(left)+len(right) != n {
		panic(fmt.Errorf("%w: split of %d items dropped items", ErrStructural, n))
	}
}
