package rtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

func TestRectMeasures(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	require.Equal(t, 4.0, r.MaxX())
	require.Equal(t, 6.0, r.MaxY())
	require.Equal(t, orb.Point{2.5, 4}, r.Center())
	require.Equal(t, 12.0, r.Area())
	require.Equal(t, 14.0, r.Margin())
	require.Equal(t, "[1,2,3,4]", r.String())

	p := PointRect(orb.Point{5, 5})
	require.Zero(t, p.Area())
	require.Zero(t, p.Margin())
	require.NoError(t, p.validate())
}

func TestRectSetOperations(t *testing.T) {
	for _, tc := range []struct {
		name         string
		a, b         Rect
		union        Rect
		intersects   bool
		overlap      float64
		enlargementA float64
	}{
		{
			name:         "overlapping",
			a:            NewRect(0, 0, 2, 2),
			b:            NewRect(1, 1, 2, 2),
			union:        NewRect(0, 0, 3, 3),
			intersects:   true,
			overlap:      1,
			enlargementA: 5,
		},
		{
			name:         "touching",
			a:            NewRect(0, 0, 1, 1),
			b:            NewRect(1, 0, 1, 1),
			union:        NewRect(0, 0, 2, 1),
			intersects:   true,
			overlap:      0,
			enlargementA: 1,
		},
		{
			name:         "disjoint",
			a:            NewRect(0, 0, 1, 1),
			b:            NewRect(3, 3, 1, 1),
			union:        NewRect(0, 0, 4, 4),
			intersects:   false,
			overlap:      0,
			enlargementA: 15,
		},
		{
			name:         "nested",
			a:            NewRect(0, 0, 10, 10),
			b:            NewRect(2, 2, 1, 1),
			union:        NewRect(0, 0, 10, 10),
			intersects:   true,
			overlap:      1,
			enlargementA: 0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.union, tc.a.Union(tc.b))
			require.Equal(t, tc.union, tc.b.Union(tc.a))
			require.Equal(t, tc.intersects, tc.a.Intersects(tc.b))
			require.Equal(t, tc.intersects, tc.b.Intersects(tc.a))
			require.Equal(t, tc.overlap, tc.a.Overlap(tc.b))
			require.Equal(t, tc.enlargementA, tc.a.Enlargement(tc.b))
		})
	}
}

func TestRectIntersectionOfDisjointIsNegative(t *testing.T) {
	got := NewRect(0, 0, 1, 1).Intersection(NewRect(3, 0, 1, 1))
	require.Less(t, got.Width, 0.0)
	require.Equal(t, 1.0, got.Height)
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 10, 10)
	require.True(t, outer.Contains(outer))
	require.True(t, outer.Contains(NewRect(2, 2, 3, 3)))
	require.False(t, outer.Contains(NewRect(8, 8, 3, 3)))
	require.False(t, NewRect(2, 2, 3, 3).Contains(outer))

	require.True(t, outer.ContainsPoint(orb.Point{0, 10}), "boundary counts")
	require.True(t, outer.ContainsPoint(orb.Point{5, 5}))
	require.False(t, outer.ContainsPoint(orb.Point{10.5, 5}))
	require.False(t, outer.ContainsPoint(orb.Point{5, -0.5}))
}

func TestRectValidate(t *testing.T) {
	require.NoError(t, NewRect(-5, -5, 0, 0).validate())
	require.NoError(t, NewRect(-5, -5, 1, 1).validate())
	for _, r := range []Rect{
		NewRect(0, 0, -1, 0),
		NewRect(0, 0, 0, -1),
		NewRect(nan(), 0, 1, 1),
		NewRect(0, inf(), 1, 1),
		NewRect(0, 0, math.Inf(-1), 1),
		NewRect(0, 0, 1, nan()),
	} {
		require.ErrorIs(t, r.validate(), ErrInvalidRectangle, "rect %v", r)
	}
}

func TestRectAgreesWithOrb(t *testing.T) {
	rnd := rand.New(rand.NewSource(0))
	randomGridRect := func() Rect {
		return NewRect(
			float64(rnd.Intn(20)),
			float64(rnd.Intn(20)),
			float64(rnd.Intn(6)),
			float64(rnd.Intn(6)),
		)
	}
	for i := 0; i < 1000; i++ {
		a, b := randomGridRect(), randomGridRect()
		ba, bb := a.Bound(), b.Bound()

		require.Equal(t, a, FromBound(ba))
		require.Equal(t, ba.Intersects(bb), a.Intersects(b), "%v %v", a, b)
		require.Equal(t, ba.Union(bb), a.Union(b).Bound(), "%v %v", a, b)

		p := orb.Point{float64(rnd.Intn(25)), float64(rnd.Intn(25))}
		require.Equal(t, ba.Contains(p), a.ContainsPoint(p), "%v %v", a, p)
	}
}

func TestCombine(t *testing.T) {
	got := combine([]Rect{
		NewRect(5, 5, 1, 1),
		NewRect(-1, 2, 1, 1),
		NewRect(3, 9, 2, 2),
	})
	require.Equal(t, NewRect(-1, 2, 7, 9), got)
}
