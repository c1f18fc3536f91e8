package cycles

import (
	"slices"
	"testing"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

func build(edges [][2]string) *graph.Graph[int, int] {
	g := graph.New[int, int]()
	for _, e := range edges {
		g.AddEdge(e[0], e[1], 0)
	}
	return g
}

func components(g *graph.Graph[int, int]) [][]string {
	var comps [][]string
	for comp := range StronglyConnected(g) {
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	slices.SortFunc(comps, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return comps
}

func TestStronglyConnected_DAG(t *testing.T) {
	g := build([][2]string{{"a", "b"}, {"b", "c"}})

	comps := components(g)
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3 singletons: %v", len(comps), comps)
	}
	for _, c := range comps {
		if len(c) != 1 {
			t.Errorf("component %v should be a singleton", c)
		}
	}
}

func TestStronglyConnected_SingleCycle(t *testing.T) {
	g := build([][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}})

	comps := components(g)
	want := [][]string{{"a", "b", "c"}, {"d"}}
	if len(comps) != 2 || !slices.Equal(comps[0], want[0]) || !slices.Equal(comps[1], want[1]) {
		t.Errorf("components = %v, want %v", comps, want)
	}
}

func TestStronglyConnected_TwoComponents(t *testing.T) {
	g := build([][2]string{
		{"a", "b"}, {"b", "a"},
		{"b", "c"},
		{"c", "d"}, {"d", "c"},
	})

	comps := components(g)
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if len(comps) != 2 || !slices.Equal(comps[0], want[0]) || !slices.Equal(comps[1], want[1]) {
		t.Errorf("components = %v, want %v", comps, want)
	}
}

func TestStronglyConnected_SelfEdgeStaysSingleton(t *testing.T) {
	g := build([][2]string{{"a", "a"}, {"a", "b"}})

	comps := components(g)
	if len(comps) != 2 {
		t.Fatalf("got %d components, want 2: %v", len(comps), comps)
	}
}

func TestStronglyConnected_LazyStop(t *testing.T) {
	g := build([][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})

	seen := 0
	for range StronglyConnected(g) {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("early break consumed %d components, want 1", seen)
	}
}

func TestStronglyConnected_DeepChain(t *testing.T) {
	// Deep enough to rule out recursive implementations.
	g := graph.New[int, int]()
	prev := "n0000000"
	for i := 1; i < 100000; i++ {
		id := "n" + pad7(i)
		g.AddEdge(prev, id, 0)
		prev = id
	}
	g.AddEdge(prev, "n0000000", 0) // close one giant cycle

	count := 0
	for comp := range StronglyConnected(g) {
		count++
		if len(comp) != 100000 {
			t.Fatalf("component size = %d, want 100000", len(comp))
		}
	}
	if count != 1 {
		t.Errorf("got %d components, want 1", count)
	}
}

func pad7(i int) string {
	d := []byte("0000000")
	for p := len(d) - 1; i > 0 && p >= 0; p-- {
		d[p] = byte('0' + i%10)
		i /= 10
	}
	return string(d)
}
