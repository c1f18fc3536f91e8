package layout

import (
	"context"
	"strconv"

	gonumgraph "gonum.org/v1/gonum/graph"
)

// LayoutDirected runs the full pipeline over any gonum directed graph and
// returns the computed center coordinate of every node, keyed by gonum node
// ID. The size callback supplies each node's width and height; a nil
// callback lays out zero-size nodes.
//
// The pipeline's preconditions still apply: the graph must have at least
// one source and one sink, and loop headers must resolve to a single
// canonical back-edge. When they do not, the error is returned unchanged so
// callers can fall back to a generic layout.
func LayoutDirected(ctx context.Context, src gonumgraph.Directed, size func(id int64) (w, h float64), cfg Config) (map[int64]Point, error) {
	g := NewGraph()

	it := src.Nodes()
	for it.Next() {
		id := it.Node().ID()
		var w, h float64
		if size != nil {
			w, h = size(id)
		}
		g.AddNode(strconv.FormatInt(id, 10), &Node{Width: w, Height: h})
	}
	it.Reset()
	for it.Next() {
		uid := it.Node().ID()
		to := src.From(uid)
		for to.Next() {
			g.AddEdge(
				strconv.FormatInt(uid, 10),
				strconv.FormatInt(to.Node().ID(), 10),
				&Edge{},
			)
		}
	}

	l, err := New(g, cfg)
	if err != nil {
		return nil, err
	}
	if err := l.Run(ctx); err != nil {
		return nil, err
	}

	out := make(map[int64]Point, g.NodeCount())
	for _, id := range g.NodeIDs() {
		v, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		n, _ := g.Node(id)
		out[v] = Point{X: n.X, Y: n.Y}
	}
	return out, nil
}
