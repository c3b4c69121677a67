package rtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestBulkLoad(t *testing.T) {
	for kind, s := range strategies(DefaultCapacity()) {
		t.Run(kind, func(t *testing.T) {
			rnd := rand.New(rand.NewSource(7))
			entries := make([]Entry[string], 100)
			for i := range entries {
				entries[i] = Entry[string]{
					Element: fmt.Sprintf("N%d", i),
					Rect:    NewRect(rnd.Float64()*1000, rnd.Float64()*1000, 10, 10),
				}
			}

			rt, err := BulkLoad(s, entries)
			require.NoError(t, err)
			checkInvariants(t, rt, s.Capacity)
			require.Equal(t, len(entries), rt.Count())
			for _, e := range entries {
				got, ok := rt.Pick(e.Rect.Center())
				require.True(t, ok)
				r, _ := rt.Lookup(got)
				require.True(t, r.ContainsPoint(e.Rect.Center()))

				r, ok = rt.Lookup(e.Element)
				require.True(t, ok)
				require.Equal(t, e.Rect, r)
			}
		})
	}
}

func TestBulkInsertEmpty(t *testing.T) {
	rt, err := BulkLoad[int](QuadraticStrategy(DefaultCapacity()), nil)
	require.NoError(t, err)
	require.True(t, rt.Empty())
}

func TestBulkInsertValidatesFirst(t *testing.T) {
	s := QuadraticStrategy(DefaultCapacity())
	rt := New[int]()
	require.NoError(t, rt.Insert(s, 99, NewRect(0, 0, 1, 1)))

	entries := []Entry[int]{
		{Element: 1, Rect: NewRect(0, 0, 1, 1)},
		{Element: 2, Rect: NewRect(0, 0, -1, 1)},
	}
	err := rt.BulkInsert(s, entries)
	require.ErrorIs(t, err, ErrInvalidRectangle)
	require.Contains(t, err.Error(), "entry 1")
	require.Equal(t, 1, rt.Count(), "nothing was inserted")

	_, err = BulkLoad(Strategy{}, entries)
	require.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestBulkInsertKeepsCallerSlice(t *testing.T) {
	entries := []Entry[int]{
		{Element: 1, Rect: PointRect(orb.Point{9, 0})},
		{Element: 2, Rect: PointRect(orb.Point{1, 0})},
		{Element: 3, Rect: PointRect(orb.Point{5, 0})},
	}
	rt := New[int]()
	require.NoError(t, rt.BulkInsert(RStarStrategy(DefaultCapacity()), entries))
	require.Equal(t, 1, entries[0].Element)
	require.Equal(t, 2, entries[1].Element)
	require.Equal(t, 3, entries[2].Element)

	var order []int
	for _, e := range rt.Entries() {
		order = append(order, e.Element)
	}
	require.Equal(t, []int{2, 3, 1}, order, "inserted by horizontal centre")
}
