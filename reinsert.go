package rtree

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Reinsert is a maintenance pass that reduces the overlap accumulated by
// ordinary insertions. The entries chosen by RemoveForReinsert are taken out
// of the tree and then inserted again using the given strategy. It returns
// the number of entries that were moved. Moved entries are counted as
// reinserted, not as inserts and removals.
func (t *RTree[T]) Reinsert(s Strategy) (int, error) {
	if err := t.checkStrategy(s); err != nil {
		return 0, err
	}
	evicted := t.RemoveForReinsert()
	for _, e := range evicted {
		t.insert(s, e.Element, e.Rect)
	}
	t.countReinserted(len(evicted))
	t.log().Debug("reinserted entries",
		zap.Int("entries", len(evicted)),
		zap.Int("leaves", len(t.leaves())),
		zap.Int("height", t.Height()),
	)
	return len(evicted), nil
}

// RemoveForReinsert is the removal half of Reinsert. For each leaf, its
// entries are ordered by decreasing distance of their centres from the
// leaf's centre and the furthest share of them (30% by default) is chosen.
// Leaves holding fewer entries than the average leaf, rounded down, give up
// all of their entries. The chosen entries are removed from the tree and
// returned, so the caller can inspect or alter them before putting them
// back. These removals are not counted by Stats.
func (t *RTree[T]) RemoveForReinsert() []Entry[T] {
	if t.root == noNode {
		return nil
	}
	fraction := t.reinsertFraction
	if fraction <= 0 || fraction > 1 {
		fraction = defaultReinsertFraction
	}

	leaves := t.leaves()
	average := t.Count() / len(leaves)

	var evicted []Entry[T]
	for _, leaf := range leaves {
		n := t.node(leaf)
		center := n.bounds.Center()
		if t.gravityCenter {
			center = centerOfGravity(n.entries)
		}
		sorted := make([]Entry[T], len(n.entries))
		copy(sorted, n.entries)
		sort.SliceStable(sorted, func(i, j int) bool {
			return distance(center, sorted[i].Rect) > distance(center, sorted[j].Rect)
		})

		take := len(sorted)
		if take >= average {
			take = int(float64(take) * fraction)
		}
		evicted = append(evicted, sorted[:take]...)
	}

	// Keep the capacity even if the tree empties; the entries go back in
	// under it.
	capacity := t.capacity
	for _, e := range evicted {
		t.removeFrom(t.where[e.Element], e.Element)
	}
	t.capacity = capacity
	return evicted
}

func centerOfGravity[T comparable](entries []Entry[T]) orb.Point {
	var sumX, sumY float64
	for _, e := range entries {
		sumX += e.Rect.CenterX()
		sumY += e.Rect.CenterY()
	}
	n := float64(len(entries))
	return orb.Point{sumX / n, sumY / n}
}

func distance(center orb.Point, r Rect) float64 {
	return math.Hypot(r.CenterX()-center.X(), r.CenterY()-center.Y())
}
