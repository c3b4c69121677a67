package rtree

import "math"

// QuadraticSplitter splits nodes using Guttman's quadratic method: the two
// items that would waste the most area together seed the groups, then the
// remaining items are assigned in order of how strongly they prefer one
// group over the other.
type QuadraticSplitter struct{}

// Split implements Splitter.
func (QuadraticSplitter) Split(rects []Rect, c Capacity) (left, right []int) {
	seedA, seedB := pickSeeds(rects)
	left, right = []int{seedA}, []int{seedB}
	boundA, boundB := rects[seedA], rects[seedB]

	assigned := make([]bool, len(rects))
	assigned[seedA], assigned[seedB] = true, true
	remaining := len(rects) - 2

	// A group is full once the other can no longer reach the minimum.
	limit := c.Max - c.Min + 1
	for remaining > 0 && len(left) < limit && len(right) < limit {
		next, growA, growB := pickNext(rects, assigned, boundA, boundB)
		assigned[next] = true
		remaining--
		if preferFirst(growA, growB, boundA.Area(), boundB.Area(), len(left), len(right)) {
			left = append(left, next)
			boundA = boundA.Union(rects[next])
		} else {
			right = append(right, next)
			boundB = boundB.Union(rects[next])
		}
	}

	for i, done := range assigned {
		if done {
			continue
		}
		if len(left) >= limit {
			right = append(right, i)
		} else {
			left = append(left, i)
		}
	}
	return left, right
}

// pickSeeds finds the pair of rects whose combined bounding box wastes the
// most area relative to the rects themselves.
func pickSeeds(rects []Rect) (int, int) {
	bestA, bestB := 0, 1
	bestWaste := math.Inf(-1)
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			waste := rects[i].Union(rects[j]).Area() - rects[i].Area() - rects[j].Area()
			if waste > bestWaste {
				bestWaste = waste
				bestA, bestB = i, j
			}
		}
	}
	return bestA, bestB
}

// pickNext finds the unassigned rect with the greatest difference between
// the enlargement each group would need to take it, and returns it along
// with those enlargements.
func pickNext(rects []Rect, assigned []bool, boundA, boundB Rect) (int, float64, float64) {
	best := -1
	var bestDiff, bestGrowA, bestGrowB float64
	for i, r := range rects {
		if assigned[i] {
			continue
		}
		growA := boundA.Enlargement(r)
		growB := boundB.Enlargement(r)
		diff := math.Abs(growA - growB)
		if best == -1 || diff > bestDiff {
			best, bestDiff = i, diff
			bestGrowA, bestGrowB = growA, growB
		}
	}
	return best, bestGrowA, bestGrowB
}

// preferFirst decides which group takes the next item: the one needing the
// least enlargement, then the one with the smaller area, then the one with
// fewer items.
func preferFirst(growA, growB, areaA, areaB float64, sizeA, sizeB int) bool {
	if growA != growB {
		return growA < growB
	}
	if areaA != areaB {
		return areaA < areaB
	}
	return sizeA < sizeB
}
