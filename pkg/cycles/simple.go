package cycles

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// Cycle is an elementary (simple) cycle: a closed walk that visits each node
// at most once. Both the node sequence and the edge sequence are recorded,
// because two cycles can share an identical node set while using different
// edges.
type Cycle struct {
	// Nodes is the cycle's node sequence, starting at its lowest node ID.
	Nodes []string
	// Edges is the cycle's edge sequence; Edges[i] leads from Nodes[i] to
	// Nodes[(i+1) % len(Nodes)].
	Edges []graph.EdgeID
}

// Len returns the cycle length in edges.
func (c Cycle) Len() int { return len(c.Edges) }

// Contains reports whether the cycle passes through the node.
func (c Cycle) Contains(id string) bool { return slices.Contains(c.Nodes, id) }

// ContainsEdge reports whether the cycle uses the edge.
func (c Cycle) ContainsEdge(e graph.EdgeID) bool { return slices.Contains(c.Edges, e) }

// SimpleCycles enumerates every elementary cycle of g using a Johnson-style
// blocked depth-first search restricted to each non-trivial strongly
// connected component. Self-edges are reported directly as length-1 cycles.
//
// After all cycles through a component's start node are found, the start
// node is removed and the remainder is re-decomposed into smaller components
// until no non-trivial component remains. Enumeration order is deterministic:
// start nodes are always the lowest remaining ID.
func SimpleCycles[N, E any](g *graph.Graph[N, E]) []Cycle {
	var cycles []Cycle

	for _, e := range g.Edges() {
		if e.Src == e.Dst {
			cycles = append(cycles, Cycle{Nodes: []string{e.Src}, Edges: []graph.EdgeID{e}})
		}
	}

	for comp := range StronglyConnected(g) {
		if len(comp) < 2 {
			continue
		}
		set := make(map[string]struct{}, len(comp))
		for _, id := range comp {
			set[id] = struct{}{}
		}
		cycles = append(cycles, componentCycles(g.Subgraph(set))...)
	}
	return cycles
}

// componentCycles enumerates the cycles of one non-trivial strongly
// connected subgraph, mutating sub as it shrinks.
func componentCycles[N, E any](sub *graph.Graph[N, E]) []Cycle {
	var cycles []Cycle

	for sub.NodeCount() > 1 {
		start := sub.NodeIDs()[0]
		cycles = append(cycles, circuitsFrom(sub, start)...)

		// Every cycle through start has been found; re-decompose the rest.
		if err := sub.RemoveNode(start); err != nil {
			panic(err) // start was just enumerated from sub
		}
		remainder := sub
		sub = nil
		for comp := range StronglyConnected(remainder) {
			if len(comp) < 2 {
				continue
			}
			set := make(map[string]struct{}, len(comp))
			for _, id := range comp {
				set[id] = struct{}{}
			}
			if sub == nil {
				sub = remainder.Subgraph(set)
			} else {
				cycles = append(cycles, componentCycles(remainder.Subgraph(set))...)
			}
		}
		if sub == nil {
			break
		}
	}
	return cycles
}

// circuitsFrom runs Johnson's blocked DFS, yielding every elementary cycle
// through start within sub. The blocked set prevents revisiting nodes on the
// current path; the B map records which nodes to unblock once a node becomes
// unblocked again, which keeps the search output-sensitive.
func circuitsFrom[N, E any](sub *graph.Graph[N, E], start string) []Cycle {
	var (
		cycles  []Cycle
		path    []string
		blocked = make(map[string]bool)
		b       = make(map[string]map[string]struct{})
	)

	var unblock func(id string)
	unblock = func(id string) {
		blocked[id] = false
		for w := range b[id] {
			delete(b[id], w)
			if blocked[w] {
				unblock(w)
			}
		}
	}

	var circuit func(v string) bool
	circuit = func(v string) bool {
		found := false
		path = append(path, v)
		blocked[v] = true

		for _, w := range sub.Successors(v) {
			if w == v {
				continue // self-edges are reported separately
			}
			if w == start {
				cycles = append(cycles, closePath(path))
				found = true
			} else if !blocked[w] {
				if circuit(w) {
					found = true
				}
			}
		}

		if found {
			unblock(v)
		} else {
			for _, w := range sub.Successors(v) {
				if w == v {
					continue
				}
				if b[w] == nil {
					b[w] = make(map[string]struct{})
				}
				b[w][v] = struct{}{}
			}
		}
		path = path[:len(path)-1]
		return found
	}

	circuit(start)
	return cycles
}

// closePath copies the current DFS path into a Cycle, deriving the edge
// sequence including the closing edge back to the path head.
func closePath(path []string) Cycle {
	nodes := slices.Clone(path)
	edges := make([]graph.EdgeID, len(nodes))
	for i := range nodes {
		edges[i] = graph.EdgeID{Src: nodes[i], Dst: nodes[(i+1)%len(nodes)]}
	}
	return Cycle{Nodes: nodes, Edges: edges}
}
