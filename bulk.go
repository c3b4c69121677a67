package rtree

import (
	"fmt"
	"sort"
)

// BulkLoad creates a new RTree holding every entry. The entries are ordered
// by the horizontal centre of their rectangles and then inserted one at a
// time, which keeps neighbouring entries together without any explicit
// tiling.
func BulkLoad[T comparable](s Strategy, entries []Entry[T], opts ...Option) (*RTree[T], error) {
	t := New[T](opts...)
	if err := t.BulkInsert(s, entries); err != nil {
		return nil, err
	}
	return t, nil
}

// BulkInsert adds every entry to the tree, ordered by the horizontal centre
// of their rectangles. Every rectangle is checked before anything is
// inserted.
func (t *RTree[T]) BulkInsert(s Strategy, entries []Entry[T]) error {
	if err := t.checkStrategy(s); err != nil {
		return err
	}
	for i, e := range entries {
		if err := e.Rect.validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	items := make([]Entry[T], len(entries))
	copy(items, entries)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Rect.CenterX() < items[j].Rect.CenterX()
	})
	for _, item := range items {
		t.insert(s, item.Element, item.Rect)
		t.countInsert()
	}
	return nil
}
