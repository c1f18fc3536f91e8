package layout

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// LoopScopes returns, for every back-edge, the nodes inside its loop scope:
// everything reachable from the back-edge's target along forward edges
// without descending past the back-edge source's rank. Renderers use this
// to draw loop enclosures. Only valid after Run.
func (l *Layouter) LoopScopes() map[graph.EdgeID][]string {
	scopes := make(map[graph.EdgeID][]string, len(l.backs))
	for _, b := range l.backs {
		seen := map[string]struct{}{b.id.Dst: {}}
		queue := []string{b.id.Dst}
		members := []string{}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			members = append(members, n)
			for _, s := range l.g.Successors(n) {
				if l.isBack(graph.EdgeID{Src: n, Dst: s}) {
					continue
				}
				if _, ok := seen[s]; ok {
					continue
				}
				if l.node(s).Rank > b.srcRank {
					continue
				}
				seen[s] = struct{}{}
				queue = append(queue, s)
			}
		}
		slices.Sort(members)
		scopes[b.id] = members
	}
	return scopes
}
