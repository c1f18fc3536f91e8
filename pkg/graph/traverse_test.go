package graph

import (
	"slices"
	"testing"
)

type edgeEvent struct {
	src, dst string
	kind     EdgeKind
}

func collectDFS(g *Graph[int, string], start string) []edgeEvent {
	var events []edgeEvent
	DFS(g, start, func(src, dst string, kind EdgeKind) bool {
		events = append(events, edgeEvent{src, dst, kind})
		return true
	})
	return events
}

func TestDFS_Chain(t *testing.T) {
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")

	want := []edgeEvent{
		{"a", "b", TreeEdge},
		{"b", "c", TreeEdge},
	}
	if got := collectDFS(g, "a"); !slices.Equal(got, want) {
		t.Errorf("DFS events = %v, want %v", got, want)
	}
}

func TestDFS_BackEdge(t *testing.T) {
	// a → b → c → b is a loop; c→b must be classified as a back-edge
	// because b is still locked on the stack when c explores it.
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")
	g.AddEdge("c", "b", "")

	want := []edgeEvent{
		{"a", "b", TreeEdge},
		{"b", "c", TreeEdge},
		{"c", "b", BackEdge},
	}
	if got := collectDFS(g, "a"); !slices.Equal(got, want) {
		t.Errorf("DFS events = %v, want %v", got, want)
	}
}

func TestDFS_SelfEdge(t *testing.T) {
	g := New[int, string]()
	g.AddNode("a", 0)
	g.AddEdge("a", "a", "")

	want := []edgeEvent{{"a", "a", BackEdge}}
	if got := collectDFS(g, "a"); !slices.Equal(got, want) {
		t.Errorf("DFS events = %v, want %v", got, want)
	}
}

func TestDFS_CrossEdge(t *testing.T) {
	// Diamond: the second edge into d arrives after d's traversal completed.
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("a", "c", "")
	g.AddEdge("b", "d", "")
	g.AddEdge("c", "d", "")

	want := []edgeEvent{
		{"a", "b", TreeEdge},
		{"b", "d", TreeEdge},
		{"a", "c", TreeEdge},
		{"c", "d", CrossEdge},
	}
	if got := collectDFS(g, "a"); !slices.Equal(got, want) {
		t.Errorf("DFS events = %v, want %v", got, want)
	}
}

func TestDFS_EarlyStop(t *testing.T) {
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")

	count := 0
	DFS(g, "a", func(src, dst string, kind EdgeKind) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("visit called %d times after early stop, want 1", count)
	}
}

func TestDFS_UnreachableNodesSkipped(t *testing.T) {
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddNode("island", 0)

	for _, ev := range collectDFS(g, "a") {
		if ev.src == "island" || ev.dst == "island" {
			t.Fatalf("unreachable node visited: %v", ev)
		}
	}
}

func TestDFS_DeepGraphNoStackOverflow(t *testing.T) {
	// A 200k-node chain would overflow a recursive DFS.
	g := New[int, string]()
	prev := "n0000000"
	for i := 1; i < 200000; i++ {
		id := "n" + pad7(i)
		g.AddEdge(prev, id, "")
		prev = id
	}

	count := 0
	DFS(g, "n0000000", func(src, dst string, kind EdgeKind) bool {
		count++
		return true
	})
	if count != 199999 {
		t.Errorf("visited %d edges, want 199999", count)
	}
}

func pad7(i int) string {
	s := "0000000"
	d := []byte(s)
	for p := len(d) - 1; i > 0 && p >= 0; p-- {
		d[p] = byte('0' + i%10)
		i /= 10
	}
	return string(d)
}

func TestPostOrder(t *testing.T) {
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("a", "c", "")
	g.AddEdge("b", "d", "")
	g.AddEdge("c", "d", "")

	got := PostOrder(g, "a")
	want := []string{"d", "b", "c", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("PostOrder = %v, want %v", got, want)
	}
}

func TestReversePostOrder_ParentsFirst(t *testing.T) {
	g := New[int, string]()
	g.AddEdge("a", "b", "")
	g.AddEdge("b", "c", "")
	g.AddEdge("a", "c", "")

	got := ReversePostOrder(g, "a")
	pos := make(map[string]int, len(got))
	for i, id := range got {
		pos[id] = i
	}
	if !(pos["a"] < pos["b"] && pos["b"] < pos["c"]) {
		t.Errorf("ReversePostOrder = %v, want a before b before c", got)
	}
}
