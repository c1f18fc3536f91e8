package layout

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// denormalize fuses every dummy chain back into its original edge. The
// polyline passes through the rank band of every dummy on the chain, and
// its interior waypoints are straightened onto a single vertical skip lane
// at the rightmost interior x, so a long edge reads as one straight drop
// instead of a staircase. Dummy nodes are removed afterwards.
func (l *Layouter) denormalize() error {
	keys := make([]graph.EdgeID, 0, len(l.chains))
	for e := range l.chains {
		keys = append(keys, e)
	}
	slices.SortFunc(keys, compareEdgeIDs)

	for _, e := range keys {
		chain := l.chains[e]
		payload := l.chainEdges[e]
		src := l.node(e.Src)
		dst := l.node(e.Dst)

		pts := make([]Point, 0, 2*len(chain)+2)
		pts = append(pts, Point{X: src.X, Y: src.Y + src.Height/2})
		for _, d := range chain {
			n := l.node(d)
			band := l.rankHeight[n.Rank]
			pts = append(pts,
				Point{X: n.X, Y: n.Y - band/2},
				Point{X: n.X, Y: n.Y + band/2},
			)
		}
		pts = append(pts, Point{X: dst.X, Y: dst.Y - dst.Height/2})

		laneX := pts[1].X
		for _, p := range pts[1 : len(pts)-1] {
			if p.X > laneX {
				laneX = p.X
			}
		}
		for i := 1; i < len(pts)-1; i++ {
			pts[i].X = laneX
		}

		payload.Points = pts
		l.g.AddEdge(e.Src, e.Dst, payload)

		for _, d := range chain {
			l.dropFromRank(d)
			_ = l.g.RemoveNode(d)
			delete(l.dummies, d)
		}
	}
	return nil
}
