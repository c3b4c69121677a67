package rtree

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Rect is an axis-aligned rectangle described by its minimum corner and its
// extent. Zero width or height is allowed, so points can be stored as
// degenerate rectangles.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a Rect with the given minimum corner and extent.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// PointRect gives the zero area Rect located at p.
func PointRect(p orb.Point) Rect {
	return Rect{X: p.X(), Y: p.Y()}
}

// FromBound converts an orb.Bound into a Rect.
func FromBound(b orb.Bound) Rect {
	return Rect{
		X:      b.Min.X(),
		Y:      b.Min.Y(),
		Width:  b.Max.X() - b.Min.X(),
		Height: b.Max.Y() - b.Min.Y(),
	}
}

// Bound converts the Rect into an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.X, r.Y},
		Max: orb.Point{r.MaxX(), r.MaxY()},
	}
}

func (r Rect) MaxX() float64    { return r.X + r.Width }
func (r Rect) MaxY() float64    { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Center gives the centre point of the Rect.
func (r Rect) Center() orb.Point {
	return orb.Point{r.CenterX(), r.CenterY()}
}

// Area is the product of width and height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Margin is the perimeter based goodness metric used by the R*-tree split,
// 2 × (width + height).
func (r Rect) Margin() float64 {
	return 2 * (r.Width + r.Height)
}

// Union gives the smallest Rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.MaxX(), other.MaxX())
	maxY := math.Max(r.MaxY(), other.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersection gives the common region of r and other. When the two don't
// intersect, the result has a negative width or height; use Intersects or
// Overlap when that matters.
func (r Rect) Intersection(other Rect) Rect {
	minX := math.Max(r.X, other.X)
	minY := math.Max(r.Y, other.Y)
	maxX := math.Min(r.MaxX(), other.MaxX())
	maxY := math.Min(r.MaxY(), other.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Overlap is the area of the intersection of r and other, or zero when they
// are disjoint.
func (r Rect) Overlap(other Rect) float64 {
	if !r.Intersects(other) {
		return 0
	}
	return r.Intersection(other).Area()
}

// Enlargement returns how much additional area r would have to grow by to
// accommodate other.
func (r Rect) Enlargement(other Rect) float64 {
	return r.Union(other).Area() - r.Area()
}

// Intersects reports whether r and other share at least one point. Touching
// edges count.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.MaxX() && other.X <= r.MaxX() &&
		r.Y <= other.MaxY() && other.Y <= r.MaxY()
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && other.MaxX() <= r.MaxX() &&
		r.Y <= other.Y && other.MaxY() <= r.MaxY()
}

// ContainsPoint reports whether p lies inside r or on its boundary.
func (r Rect) ContainsPoint(p orb.Point) bool {
	if p.X() < r.X || p.X() > r.MaxX() {
		return false
	}
	if p.Y() < r.Y || p.Y() > r.MaxY() {
		return false
	}
	return true
}

func (r Rect) validate() error {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite component in %v", ErrInvalidRectangle, r)
		}
	}
	if r.Width < 0 || r.Height < 0 {
		return fmt.Errorf("%w: negative extent in %v", ErrInvalidRectangle, r)
	}
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g]", r.X, r.Y, r.Width, r.Height)
}

// combine gives the smallest Rect containing every rect in rects. rects must
// not be empty.
func combine(rects []Rect) Rect {
	bb := rects[0]
	for _, r := range rects[1:] {
		bb = bb.Union(r)
	}
	return bb
}
