package cycles

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graph"
)

// Backedges holds the back-edge classification of a graph.
type Backedges struct {
	// All is every back-edge found by the traversal, sorted.
	All []graph.EdgeID
	// Canonical holds, per target node, the single back-edge chosen to
	// represent its loop. Equal to All when classification was non-strict or
	// no target had more than one back-edge.
	Canonical []graph.EdgeID
	// Eclipsed holds back-edges that share a target with a canonical
	// back-edge of a longer elementary cycle. Empty in non-strict mode.
	Eclipsed []graph.EdgeID
}

// Find detects the back-edges of g by depth-first traversal from start: a
// node is locked while on the traversal stack, and any edge into a locked
// node is a back-edge.
//
// If start is empty it is inferred, but only when the graph has exactly one
// source node; otherwise an UNSUPPORTED_AMBIGUOUS_START error is returned.
//
// In non-strict mode the raw back-edge set is returned. Strict mode
// additionally enumerates all elementary cycles and, for every target node
// with more than one back-edge, selects as canonical the back-edge belonging
// to the elementary cycle of greatest edge count through that target; the
// others are moved to the eclipsed set. Equal-length cycles are broken by the
// lowest back-edge source ID - a stable but not semantically meaningful
// tie-break. If cycle bookkeeping cannot resolve a canonical edge for some
// target, an INTERNAL_NO_CANONICAL_BACKEDGE error is returned.
func Find[N, E any](g *graph.Graph[N, E], start string, strict bool) (*Backedges, error) {
	if start == "" {
		sources := g.Sources()
		if len(sources) != 1 {
			return nil, errors.New(errors.ErrCodeAmbiguousStart,
				"cannot infer start node: graph has %d sources", len(sources))
		}
		start = sources[0]
	}
	if !g.HasNode(start) {
		return nil, errors.New(errors.ErrCodeNotFound, "start node %s not in graph", start)
	}

	var all []graph.EdgeID
	graph.DFS(g, start, func(src, dst string, kind graph.EdgeKind) bool {
		if kind == graph.BackEdge {
			all = append(all, graph.EdgeID{Src: src, Dst: dst})
		}
		return true
	})
	slices.SortFunc(all, compareEdges)

	result := &Backedges{All: all, Canonical: slices.Clone(all)}
	if !strict {
		return result, nil
	}
	return eclipse(g, result)
}

// eclipse resolves one canonical back-edge per target node. Targets with a
// single back-edge keep it; targets with several keep the one on the longest
// elementary cycle through the target.
func eclipse[N, E any](g *graph.Graph[N, E], result *Backedges) (*Backedges, error) {
	byTarget := make(map[string][]graph.EdgeID)
	for _, e := range result.All {
		byTarget[e.Dst] = append(byTarget[e.Dst], e)
	}

	contested := false
	for _, edges := range byTarget {
		if len(edges) > 1 {
			contested = true
			break
		}
	}
	if !contested {
		return result, nil
	}

	// Cycle enumeration is only paid for when a target is actually contested.
	through := make(map[string][]Cycle)
	for _, c := range SimpleCycles(g) {
		for _, id := range c.Nodes {
			through[id] = append(through[id], c)
		}
	}

	result.Canonical = result.Canonical[:0]
	for _, target := range sortedKeys(byTarget) {
		edges := byTarget[target]
		if len(edges) == 1 {
			result.Canonical = append(result.Canonical, edges[0])
			continue
		}

		canonical, ok := selectCanonical(edges, through[target])
		if !ok {
			return nil, errors.New(errors.ErrCodeNoCanonical,
				"no elementary cycle contains any back-edge targeting %s", target)
		}
		result.Canonical = append(result.Canonical, canonical)
		for _, e := range edges {
			if e != canonical {
				result.Eclipsed = append(result.Eclipsed, e)
			}
		}
	}
	slices.SortFunc(result.Canonical, compareEdges)
	slices.SortFunc(result.Eclipsed, compareEdges)
	return result, nil
}

// selectCanonical picks the back-edge lying on the longest cycle. Candidates
// are scored by the longest cycle whose edge sequence uses them; the best
// score wins, lowest source ID first on ties.
func selectCanonical(edges []graph.EdgeID, cyclesThrough []Cycle) (graph.EdgeID, bool) {
	best := graph.EdgeID{}
	bestLen := 0
	for _, e := range edges {
		for _, c := range cyclesThrough {
			if !c.ContainsEdge(e) {
				continue
			}
			if c.Len() > bestLen || (c.Len() == bestLen && compareEdges(e, best) < 0) {
				best = e
				bestLen = c.Len()
			}
		}
	}
	return best, bestLen > 0
}

func compareEdges(a, b graph.EdgeID) int {
	if a.Src != b.Src {
		if a.Src < b.Src {
			return -1
		}
		return 1
	}
	if a.Dst < b.Dst {
		return -1
	}
	if a.Dst > b.Dst {
		return 1
	}
	return 0
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
