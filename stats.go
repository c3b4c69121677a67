package rtree

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Stats is a snapshot of the shape of a tree and of the work done on it
// since it was created. Inserts and Removals count caller operations only;
// entries moved by Reinsert are counted by Reinserted.
type Stats struct {
	Elements int
	Nodes    int
	Leaves   int
	Height   int

	Inserts     uint64
	Removals    uint64
	LeafSplits  uint64
	InnerSplits uint64
	Reinserted  uint64
}

type counters struct {
	inserts, removals       uint64
	leafSplits, innerSplits uint64
	reinserted              uint64
}

// Stats walks the tree and reports its shape along with the operation
// counters.
func (t *RTree[T]) Stats() Stats {
	s := Stats{
		Elements:    t.Count(),
		Height:      t.Height(),
		Inserts:     t.counters.inserts,
		Removals:    t.counters.removals,
		LeafSplits:  t.counters.leafSplits,
		InnerSplits: t.counters.innerSplits,
		Reinserted:  t.counters.reinserted,
	}
	t.Walk(func(ni NodeInfo) bool {
		s.Nodes++
		if ni.Leaf {
			s.Leaves++
		}
		return true
	})
	return s
}

var (
	leafAttrs  = metric.WithAttributes(attribute.String("node", "leaf"))
	innerAttrs = metric.WithAttributes(attribute.String("node", "inner"))
)

// instruments mirrors the counters into OpenTelemetry. The zero value
// records nothing.
type instruments struct {
	inserts    metric.Int64Counter
	removals   metric.Int64Counter
	splits     metric.Int64Counter
	reinserted metric.Int64Counter
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var in instruments
	var err error
	if in.inserts, err = meter.Int64Counter("rtree.inserts",
		metric.WithDescription("Elements inserted into the tree."),
		metric.WithUnit("{element}")); err != nil {
		return instruments{}, fmt.Errorf("failed to create inserts counter: %w", err)
	}
	if in.removals, err = meter.Int64Counter("rtree.removals",
		metric.WithDescription("Elements removed from the tree."),
		metric.WithUnit("{element}")); err != nil {
		return instruments{}, fmt.Errorf("failed to create removals counter: %w", err)
	}
	if in.splits, err = meter.Int64Counter("rtree.splits",
		metric.WithDescription("Overflowing nodes split in two."),
		metric.WithUnit("{split}")); err != nil {
		return instruments{}, fmt.Errorf("failed to create splits counter: %w", err)
	}
	if in.reinserted, err = meter.Int64Counter("rtree.reinserted",
		metric.WithDescription("Elements evicted and reinserted by maintenance passes."),
		metric.WithUnit("{element}")); err != nil {
		return instruments{}, fmt.Errorf("failed to create reinserted counter: %w", err)
	}
	return in, nil
}

func (t *RTree[T]) countInsert() {
	t.counters.inserts++
	if t.instruments.inserts != nil {
		t.instruments.inserts.Add(context.Background(), 1)
	}
}

func (t *RTree[T]) countRemoval() {
	t.counters.removals++
	if t.instruments.removals != nil {
		t.instruments.removals.Add(context.Background(), 1)
	}
}

func (t *RTree[T]) countSplit(leaf bool) {
	attrs := innerAttrs
	if leaf {
		t.counters.leafSplits++
		attrs = leafAttrs
	} else {
		t.counters.innerSplits++
	}
	if t.instruments.splits != nil {
		t.instruments.splits.Add(context.Background(), 1, attrs)
	}
}

func (t *RTree[T]) countReinserted(n int) {
	t.counters.reinserted += uint64(n)
	if t.instruments.reinserted != nil {
		t.instruments.reinserted.Add(context.Background(), int64(n))
	}
}
