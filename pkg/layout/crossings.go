package layout

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// fenwick is a binary indexed tree over edge weights, used to count
// weighted crossings between two adjacent ranks in O(E log V).
type fenwick struct {
	tree []float64
}

func newFenwick(n int) *fenwick {
	return &fenwick{tree: make([]float64, n+1)}
}

func (f *fenwick) add(i int, w float64) {
	for i++; i < len(f.tree); i += i & (-i) {
		f.tree[i] += w
	}
}

// sum returns the total weight at positions [0, i].
func (f *fenwick) sum(i int) float64 {
	s := 0.0
	for i++; i > 0; i -= i & (-i) {
		s += f.tree[i]
	}
	return s
}

// countCrossings returns the weighted crossing count of the whole layering
// under the current rank orders.
func (l *Layouter) countCrossings() float64 {
	total := 0.0
	for r := 0; r+1 < len(l.ranks); r++ {
		total += l.countBetween(l.ranks[r], l.ranks[r+1])
	}
	return total
}

// countBetween counts weighted crossings among the forward edges between
// one rank and the next. Two edges cross when their endpoints appear in
// opposite order on the two ranks; each crossing costs the product of the
// edge weights.
func (l *Layouter) countBetween(upper, lower []string) float64 {
	pos := make(map[string]int, len(lower))
	for i, id := range lower {
		pos[id] = i
	}

	type hit struct {
		pos int
		w   float64
	}
	f := newFenwick(len(lower))
	inserted := 0.0
	cross := 0.0
	for _, u := range upper {
		var hits []hit
		for _, s := range l.g.Successors(u) {
			if l.isBack(graph.EdgeID{Src: u, Dst: s}) || s == u {
				continue
			}
			p, ok := pos[s]
			if !ok {
				continue
			}
			hits = append(hits, hit{pos: p, w: edgeWeight(l.g, u, s)})
		}
		slices.SortFunc(hits, func(a, b hit) int { return a.pos - b.pos })

		// Edges sharing the upper endpoint never cross each other, so the
		// whole fan is scored before it is inserted.
		for _, h := range hits {
			cross += h.w * (inserted - f.sum(h.pos))
		}
		for _, h := range hits {
			f.add(h.pos, h.w)
			inserted += h.w
		}
	}
	return cross
}

func edgeWeight(g *Graph, src, dst string) float64 {
	e, err := g.Edge(src, dst)
	if err != nil || e == nil || e.Weight <= 0 {
		return 1
	}
	return e.Weight
}
