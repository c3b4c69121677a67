package rtree

import "sort"

// RStarSplitter splits nodes using the R*-tree method. The split axis is the
// one whose candidate distributions have the smallest total margin, and the
// distribution along that axis with the least overlap between its two groups
// (then the least total area) wins.
type RStarSplitter struct{}

// Split implements Splitter.
func (RStarSplitter) Split(rects []Rect, c Capacity) (left, right []int) {
	byX := sortedAlong(rects, func(r Rect) (float64, float64) { return r.X, r.MaxX() })
	byY := sortedAlong(rects, func(r Rect) (float64, float64) { return r.Y, r.MaxY() })

	distX := newDistributions(rects, byX, c.Min)
	distY := newDistributions(rects, byY, c.Min)

	order, dist := byY, distY
	if distX.marginSum() < distY.marginSum() {
		order, dist = byX, distX
	}
	cut := dist.best()

	left = append([]int(nil), order[:cut]...)
	right = append([]int(nil), order[cut:]...)
	return left, right
}

// sortedAlong gives the indexes of rects ordered by their lower edge, then
// their upper edge, along one axis.
func sortedAlong(rects []Rect, edges func(Rect) (float64, float64)) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		loI, hiI := edges(rects[order[i]])
		loJ, hiJ := edges(rects[order[j]])
		if loI != loJ {
			return loI < loJ
		}
		return hiI < hiJ
	})
	return order
}

// distributions holds the bounding boxes of every candidate split of an
// ordering. Candidate k puts the first m+k items in the first group.
type distributions struct {
	firstSize []int
	first     []Rect
	second    []Rect
}

func newDistributions(rects []Rect, order []int, m int) distributions {
	n := len(order)

	// prefix[i] bounds order[:i+1], suffix[i] bounds order[i:].
	prefix := make([]Rect, n)
	suffix := make([]Rect, n)
	prefix[0] = rects[order[0]]
	for i := 1; i < n; i++ {
		prefix[i] = prefix[i-1].Union(rects[order[i]])
	}
	suffix[n-1] = rects[order[n-1]]
	for i := n - 2; i >= 0; i-- {
		suffix[i] = suffix[i+1].Union(rects[order[i]])
	}

	var d distributions
	// First groups of m to n-m items, so both groups hold at least m.
	for size := m; size <= n-m; size++ {
		d.firstSize = append(d.firstSize, size)
		d.first = append(d.first, prefix[size-1])
		d.second = append(d.second, suffix[size])
	}
	return d
}

func (d distributions) marginSum() float64 {
	var sum float64
	for k := range d.firstSize {
		sum += d.first[k].Margin() + d.second[k].Margin()
	}
	return sum
}

// best gives the size of the first group of the distribution with the least
// overlap, using total area to break ties.
func (d distributions) best() int {
	bestK := 0
	bestOverlap := d.first[0].Overlap(d.second[0])
	bestArea := d.first[0].Area() + d.second[0].Area()
	for k := 1; k < len(d.firstSize); k++ {
		overlap := d.first[k].Overlap(d.second[k])
		area := d.first[k].Area() + d.second[k].Area()
		if overlap < bestOverlap || (overlap == bestOverlap && area < bestArea) {
			bestK, bestOverlap, bestArea = k, overlap, area
		}
	}
	return d.firstSize[bestK]
}
