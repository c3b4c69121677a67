package rtree

// LeastEnlargement chooses the child needing the least area enlargement to
// cover the new rectangle. Area is used as a tie breaker.
type LeastEnlargement struct{}

// ChooseSubtree implements SubtreeChooser.
func (LeastEnlargement) ChooseSubtree(children []Candidate, _ bool, r Rect) int {
	best := 0
	bestDelta := children[0].Bounds.Enlargement(r)
	for i := 1; i < len(children); i++ {
		delta := children[i].Bounds.Enlargement(r)
		if delta < bestDelta {
			best, bestDelta = i, delta
		} else if delta == bestDelta && children[i].Bounds.Area() < children[best].Bounds.Area() {
			best = i
		}
	}
	return best
}

// RStarChooser is the R*-tree subtree selection. Directly above the leaves it
// picks the child whose overlap with its siblings grows the least (then least
// enlargement, then fewest entries). Higher up it picks the least enlargement
// (then smallest resulting area, then fewest children).
type RStarChooser struct{}

// ChooseSubtree implements SubtreeChooser.
func (RStarChooser) ChooseSubtree(children []Candidate, leafChildren bool, r Rect) int {
	if leafChildren {
		return leastOverlapIncrease(children, r)
	}
	return leastEnlargementThenArea(children, r)
}

func leastOverlapIncrease(children []Candidate, r Rect) int {
	best := -1
	var bestOverlap, bestDelta float64
	for i, c := range children {
		grown := c.Bounds.Union(r)
		var overlap float64
		for j, other := range children {
			if j == i {
				continue
			}
			overlap += grown.Overlap(other.Bounds) - c.Bounds.Overlap(other.Bounds)
		}
		delta := c.Bounds.Enlargement(r)
		switch {
		case best == -1,
			overlap < bestOverlap,
			overlap == bestOverlap && delta < bestDelta,
			overlap == bestOverlap && delta == bestDelta && c.Size < children[best].Size:
			best, bestOverlap, bestDelta = i, overlap, delta
		}
	}
	return best
}

func leastEnlargementThenArea(children []Candidate, r Rect) int {
	best := -1
	var bestDelta, bestArea float64
	for i, c := range children {
		grown := c.Bounds.Union(r).Area()
		delta := grown - c.Bounds.Area()
		switch {
		case best == -1,
			delta < bestDelta,
			delta == bestDelta && grown < bestArea,
			delta == bestDelta && grown == bestArea && c.Size < children[best].Size:
			best, bestDelta, bestArea = i, delta, grown
		}
	}
	return best
}
