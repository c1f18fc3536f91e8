package layout

import (
	"context"
	"testing"

	apperrors "github.com/matzehuels/flowgraph/pkg/errors"
)

func buildGraph(t *testing.T, edges [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, e := range edges {
		g.AddEdge(e[0], e[1], &Edge{})
	}
	return g
}

func mustLayout(t *testing.T, edges [][2]string) (*Graph, *Layouter) {
	t.Helper()
	g := buildGraph(t, edges)
	l, err := New(g, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return g, l
}

func nodeRank(t *testing.T, g *Graph, id string) int {
	t.Helper()
	n, err := g.Node(id)
	if err != nil {
		t.Fatalf("node %s not in graph: %v", id, err)
	}
	return n.Rank
}

func TestRankLinearChain(t *testing.T) {
	g, _ := mustLayout(t, [][2]string{{"0", "1"}, {"1", "2"}})
	for i, id := range []string{"0", "1", "2"} {
		if r := nodeRank(t, g, id); r != i {
			t.Errorf("rank(%s) = %d, want %d", id, r, i)
		}
	}
}

func TestRankDiamond(t *testing.T) {
	g, _ := mustLayout(t, [][2]string{
		{"0", "1"}, {"0", "2"}, {"1", "3"}, {"2", "3"},
	})
	want := map[string]int{"0": 0, "1": 1, "2": 1, "3": 2}
	for id, r := range want {
		if got := nodeRank(t, g, id); got != r {
			t.Errorf("rank(%s) = %d, want %d", id, got, r)
		}
	}
	n, _ := g.Node("0")
	if n.Kind != BlockBranch {
		t.Errorf("kind(0) = %v, want branch", n.Kind)
	}
}

func TestRankSelfLoop(t *testing.T) {
	g, l := mustLayout(t, [][2]string{
		{"0", "1"}, {"1", "1"}, {"1", "2"},
	})
	want := map[string]int{"0": 0, "1": 1, "2": 2}
	for id, r := range want {
		if got := nodeRank(t, g, id); got != r {
			t.Errorf("rank(%s) = %d, want %d", id, got, r)
		}
	}
	backs := l.Backedges()
	if len(backs) != 1 || backs[0].Src != "1" || backs[0].Dst != "1" {
		t.Fatalf("Backedges() = %v, want [(1,1)]", backs)
	}
}

func TestRankWhileLoop(t *testing.T) {
	// 0 -> 1 (header) -> 2 -> 3 -> 1 (back), 1 -> 4 (exit).
	g, _ := mustLayout(t, [][2]string{
		{"0", "1"}, {"1", "2"}, {"2", "3"}, {"3", "1"}, {"1", "4"},
	})
	if r := nodeRank(t, g, "4"); r <= nodeRank(t, g, "3") {
		t.Errorf("exit rank %d not below loop body (body tail rank %d)", r, nodeRank(t, g, "3"))
	}
	n, _ := g.Node("1")
	if n.Kind != BlockLoopHead {
		t.Errorf("kind(1) = %v, want loop head", n.Kind)
	}
}

func TestRankInvertedLoop(t *testing.T) {
	// do-while: exit leaves from the back-edge source.
	g, _ := mustLayout(t, [][2]string{
		{"0", "1"}, {"1", "2"}, {"2", "1"}, {"2", "3"},
	})
	n, _ := g.Node("1")
	if n.Kind != BlockLoopInverted {
		t.Errorf("kind(1) = %v, want inverted loop", n.Kind)
	}
	if r := nodeRank(t, g, "3"); r <= nodeRank(t, g, "2") {
		t.Errorf("exit rank %d not below loop tail rank %d", r, nodeRank(t, g, "2"))
	}
}

func TestRankMultiSource(t *testing.T) {
	g, _ := mustLayout(t, [][2]string{
		{"0", "2"}, {"1", "2"}, {"2", "3"},
	})
	want := map[string]int{"0": 1, "1": 1, "2": 2, "3": 3}
	for id, r := range want {
		if got := nodeRank(t, g, id); got != r {
			t.Errorf("rank(%s) = %d, want %d", id, got, r)
		}
	}
	if g.NodeCount() != 4 {
		t.Errorf("artificial start not removed: %d nodes, want 4", g.NodeCount())
	}
}

func TestRanksContiguous(t *testing.T) {
	g, _ := mustLayout(t, [][2]string{
		{"0", "1"}, {"0", "5"}, {"1", "2"}, {"2", "3"}, {"3", "1"},
		{"1", "4"}, {"4", "5"},
	})
	seen := make(map[int]bool)
	max := 0
	for _, id := range g.NodeIDs() {
		r := nodeRank(t, g, id)
		seen[r] = true
		if r > max {
			max = r
		}
	}
	for r := 0; r <= max; r++ {
		if !seen[r] {
			t.Errorf("rank %d is empty, ranks must be contiguous", r)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	edges := [][2]string{
		{"0", "1"}, {"0", "2"}, {"1", "3"}, {"2", "3"},
		{"3", "4"}, {"4", "3"}, {"4", "5"}, {"3", "5"},
	}
	g1, _ := mustLayout(t, edges)
	g2, _ := mustLayout(t, edges)
	for _, id := range g1.NodeIDs() {
		a, _ := g1.Node(id)
		b, _ := g2.Node(id)
		if a.Rank != b.Rank || a.Order != b.Order || a.X != b.X || a.Y != b.Y {
			t.Errorf("layout of %s not deterministic: %+v vs %+v", id, a, b)
		}
	}
}

func TestNewEmptyGraph(t *testing.T) {
	_, err := New(NewGraph(), DefaultConfig())
	if apperrors.GetCode(err) != apperrors.ErrCodeUnsupportedInput {
		t.Errorf("New(empty) error = %v, want unsupported input", err)
	}
}

func TestNewNoSource(t *testing.T) {
	g := buildGraph(t, [][2]string{{"0", "1"}, {"1", "0"}})
	_, err := New(g, DefaultConfig())
	if apperrors.GetCode(err) != apperrors.ErrCodeNoSource {
		t.Errorf("error = %v, want %s", err, apperrors.ErrCodeNoSource)
	}
}

func TestNewNoSink(t *testing.T) {
	g := buildGraph(t, [][2]string{{"0", "1"}, {"1", "2"}, {"2", "1"}})
	_, err := New(g, DefaultConfig())
	if apperrors.GetCode(err) != apperrors.ErrCodeNoSink {
		t.Errorf("error = %v, want %s", err, apperrors.ErrCodeNoSink)
	}
}

func TestRankUnreachable(t *testing.T) {
	// A detached source-less, sink-less cycle cannot be ranked.
	g := buildGraph(t, [][2]string{{"0", "1"}, {"a", "b"}, {"b", "a"}})
	l, err := New(g, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	err = l.Run(context.Background())
	if apperrors.GetCode(err) != apperrors.ErrCodeUnsupportedInput {
		t.Errorf("Run() error = %v, want unsupported input", err)
	}
}

func TestRankNoExitCandidate(t *testing.T) {
	// The loop 1<->2 never reaches a node outside itself.
	g := buildGraph(t, [][2]string{{"0", "1"}, {"1", "2"}, {"2", "1"}, {"0", "3"}})
	l, err := New(g, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	err = l.Run(context.Background())
	if apperrors.GetCode(err) != apperrors.ErrCodeNoExitCandidate {
		t.Errorf("Run() error = %v, want %s", err, apperrors.ErrCodeNoExitCandidate)
	}
}
