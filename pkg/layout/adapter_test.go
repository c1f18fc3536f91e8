package layout

import (
	"context"
	"testing"

	"gonum.org/v1/gonum/graph/simple"
)

func TestLayoutDirected(t *testing.T) {
	g := simple.NewDirectedGraph()
	// 1 -> 2 -> 3 -> 2 (loop), 2 -> 4
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))
	g.SetEdge(g.NewEdge(simple.Node(2), simple.Node(3)))
	g.SetEdge(g.NewEdge(simple.Node(3), simple.Node(2)))
	g.SetEdge(g.NewEdge(simple.Node(2), simple.Node(4)))

	size := func(int64) (float64, float64) { return 60, 30 }
	points, err := LayoutDirected(context.Background(), g, size, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutDirected() error: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("got %d points, want 4", len(points))
	}
	for id, p := range points {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("node %d at (%v, %v), want non-negative coordinates", id, p.X, p.Y)
		}
	}
	if !(points[1].Y < points[2].Y && points[2].Y < points[3].Y) {
		t.Errorf("flow should run downward: y1=%v y2=%v y3=%v",
			points[1].Y, points[2].Y, points[3].Y)
	}
	if points[4].Y <= points[2].Y {
		t.Errorf("loop exit should sit below the header: y4=%v y2=%v",
			points[4].Y, points[2].Y)
	}
}

func TestLayoutDirectedNilSize(t *testing.T) {
	g := simple.NewDirectedGraph()
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))

	points, err := LayoutDirected(context.Background(), g, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("LayoutDirected() error: %v", err)
	}
	if len(points) != 2 {
		t.Errorf("got %d points, want 2", len(points))
	}
}

func TestLayoutDirectedNoSink(t *testing.T) {
	g := simple.NewDirectedGraph()
	// Pure cycle, no source or sink.
	g.SetEdge(g.NewEdge(simple.Node(1), simple.Node(2)))
	g.SetEdge(g.NewEdge(simple.Node(2), simple.Node(1)))

	if _, err := LayoutDirected(context.Background(), g, nil, DefaultConfig()); err == nil {
		t.Error("LayoutDirected() should fail on a graph without sources")
	}
}
