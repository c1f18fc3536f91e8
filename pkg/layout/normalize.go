package layout

import (
	"fmt"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// normalize subdivides every forward edge spanning more than one rank into
// a chain of zero-size dummy nodes, one per intermediate rank, so the
// ordering phase only ever sees edges between adjacent ranks. The original
// edge payload is parked and restored during de-normalization.
func (l *Layouter) normalize() error {
	for _, e := range l.g.Edges() {
		if l.isBack(e) || e.Src == e.Dst {
			continue
		}
		srcRank := l.node(e.Src).Rank
		dstRank := l.node(e.Dst).Rank
		if dstRank-srcRank <= 1 {
			continue
		}

		payload, _ := l.g.Edge(e.Src, e.Dst)
		if err := l.g.RemoveEdge(e.Src, e.Dst); err != nil {
			return err
		}

		prev := e.Src
		chain := make([]string, 0, dstRank-srcRank-1)
		for r := srcRank + 1; r < dstRank; r++ {
			id := l.nextDummyID()
			l.g.AddNode(id, &Node{Rank: r})
			l.dummies[id] = struct{}{}
			l.ranks[r] = append(l.ranks[r], id)
			l.g.AddEdge(prev, id, &Edge{Weight: payload.Weight})
			chain = append(chain, id)
			prev = id
		}
		l.g.AddEdge(prev, e.Dst, &Edge{Weight: payload.Weight})

		l.chains[e] = chain
		l.chainEdges[e] = payload
	}
	return nil
}

func (l *Layouter) nextDummyID() string {
	for {
		id := fmt.Sprintf("__dummy_%d", l.nextDummy)
		l.nextDummy++
		if !l.g.HasNode(id) {
			return id
		}
	}
}

// isDummy reports whether the node was inserted by normalize.
func (l *Layouter) isDummy(id string) bool {
	_, ok := l.dummies[id]
	return ok
}

func compareEdgeIDs(a, b graph.EdgeID) int {
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
