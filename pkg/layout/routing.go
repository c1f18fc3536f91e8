package layout

import (
	"slices"
)

// routeBackedges assigns every back-edge to a vertical lane left of the
// graph and routes it as a rectangular polyline: out of the source's left
// side, across to the lane, up the lane, and into the target's left side.
//
// Lanes come from the nesting structure of the back-edges' rank intervals
// [target rank, source rank]: an interval wholly contained in another is
// its child. Leaves take the innermost lane (closest to the graph) and each
// parent sits one lane outside its deepest child, so an enclosing back-edge
// never crosses the back-edges it encloses.
func (l *Layouter) routeBackedges() error {
	if len(l.backs) == 0 {
		return nil
	}

	sorted := slices.Clone(l.backs)
	slices.SortFunc(sorted, func(a, b *backedgeInfo) int {
		if a.dstRank != b.dstRank {
			return a.dstRank - b.dstRank
		}
		if a.srcRank != b.srcRank {
			return b.srcRank - a.srcRank
		}
		return compareEdgeIDs(a.id, b.id)
	})

	// Interval-nesting sweep: an open interval stays on the stack while the
	// current one fits inside it.
	var stack []*backedgeInfo
	var roots []*backedgeInfo
	for _, b := range sorted {
		for len(stack) > 0 && stack[len(stack)-1].srcRank < b.srcRank {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			top := stack[len(stack)-1]
			top.children = append(top.children, b)
		} else {
			roots = append(roots, b)
		}
		stack = append(stack, b)
	}

	var assign func(b *backedgeInfo) int
	assign = func(b *backedgeInfo) int {
		deepest := 0
		for _, c := range b.children {
			if lane := assign(c); lane > deepest {
				deepest = lane
			}
		}
		b.lane = deepest + 1
		return b.lane
	}
	for _, r := range roots {
		assign(r)
	}

	leftmost := 0.0
	first := true
	for _, id := range l.g.NodeIDs() {
		n := l.node(id)
		if left := n.X - n.Width/2; first || left < leftmost {
			leftmost = left
			first = false
		}
	}

	for _, b := range l.backs {
		laneX := leftmost - float64(b.lane)*l.cfg.BackedgeSpacing
		src := l.node(b.id.Src)
		dst := l.node(b.id.Dst)
		p, _ := l.g.Edge(b.id.Src, b.id.Dst)

		if b.id.Src == b.id.Dst {
			// Self loop: leave below center, re-enter above center.
			p.Points = []Point{
				{X: src.X - src.Width/2, Y: src.Y + src.Height/4},
				{X: laneX, Y: src.Y + src.Height/4},
				{X: laneX, Y: src.Y - src.Height/4},
				{X: src.X - src.Width/2, Y: src.Y - src.Height/4},
			}
			continue
		}
		p.Points = []Point{
			{X: src.X - src.Width/2, Y: src.Y},
			{X: laneX, Y: src.Y},
			{X: laneX, Y: dst.Y},
			{X: dst.X - dst.Width/2, Y: dst.Y},
		}
	}
	return nil
}
