package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/graphio"
	"github.com/matzehuels/flowgraph/pkg/layout"
)

func TestToDOT(t *testing.T) {
	g := graphio.Graph{
		Nodes: []graphio.Node{
			{ID: "a", Label: "entry"},
			{ID: "b"},
		},
		Edges: []graphio.Edge{{From: "a", To: "b"}},
	}
	dot := ToDOT(g)

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"a" [label="entry"]`) {
		t.Errorf("ToDOT() missing labeled node:\n%s", dot)
	}
	if !strings.Contains(dot, `"b" [label="b"]`) {
		t.Errorf("ToDOT() should default the label to the id:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" -> "b";`) {
		t.Errorf("ToDOT() missing edge:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	l := graphio.Layout{
		Width:  200,
		Height: 100,
		Nodes: []graphio.LayoutNode{
			{ID: "a", X: 50, Y: 20, Width: 60, Height: 24, Kind: "loop"},
			{ID: "b", Label: "x < 10", X: 50, Y: 80, Width: 60, Height: 24},
		},
		Edges: []graphio.LayoutEdge{
			{From: "a", To: "b", Points: []layout.Point{{X: 50, Y: 32}, {X: 50, Y: 68}}},
			{From: "b", To: "a", Points: []layout.Point{{X: 20, Y: 80}, {X: 0, Y: 80}, {X: 0, Y: 20}, {X: 20, Y: 20}}, Backedge: true},
		},
	}
	svg := string(RenderSVG(l))

	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("RenderSVG() output is not a complete SVG document")
	}
	if strings.Count(svg, "<rect ") != 2 {
		t.Error("RenderSVG() should draw one rect per node")
	}
	if strings.Count(svg, "<polyline ") != 2 {
		t.Error("RenderSVG() should draw one polyline per edge")
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("RenderSVG() should dash back-edges")
	}
	if !strings.Contains(svg, "x &lt; 10") {
		t.Error("RenderSVG() should escape label text")
	}
}

func TestRenderSVGSkipsUnroutedEdges(t *testing.T) {
	l := graphio.Layout{
		Nodes: []graphio.LayoutNode{{ID: "a", X: 10, Y: 10, Width: 20, Height: 10}},
		Edges: []graphio.LayoutEdge{{From: "a", To: "a"}},
	}
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "<polyline ") {
		t.Error("RenderSVG() should skip edges without points")
	}
}
