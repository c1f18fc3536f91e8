package layout

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// orderingSweeps bounds the number of median passes. Alternating down/up
// sweeps converge quickly; the best order seen is kept, so extra sweeps can
// never make the result worse.
const orderingSweeps = 8

// order permutes the nodes within each rank to reduce edge crossings, using
// the median heuristic: each node is sorted by the median position of its
// neighbors in the adjacent rank, sweeping alternately downward and upward.
// The best ordering observed across all sweeps wins, and the final position
// is written into each node's Order field.
func (l *Layouter) order() error {
	best := l.snapshotRanks()
	bestCross := l.countCrossings()

	for i := 0; i < orderingSweeps && bestCross > 0; i++ {
		if i%2 == 0 {
			l.medianSweep(+1)
		} else {
			l.medianSweep(-1)
		}
		if c := l.countCrossings(); c < bestCross {
			bestCross = c
			best = l.snapshotRanks()
		}
	}

	l.ranks = best
	for _, row := range l.ranks {
		for i, id := range row {
			l.node(id).Order = i
		}
	}
	return nil
}

// medianSweep reorders every rank by the median position of each node's
// neighbors in the previously visited rank. dir +1 sweeps top-down using
// predecessors, -1 sweeps bottom-up using successors.
func (l *Layouter) medianSweep(dir int) {
	maxRank := len(l.ranks) - 1
	start, stop := 1, maxRank+1
	if dir < 0 {
		start, stop = maxRank-1, -1
	}
	for r := start; r != stop; r += dir {
		adj := l.ranks[r-dir]
		pos := make(map[string]int, len(adj))
		for i, id := range adj {
			pos[id] = i
		}

		row := l.ranks[r]
		keys := make(map[string]float64, len(row))
		for i, id := range row {
			m, ok := l.neighborMedian(id, r-dir, pos)
			if !ok {
				m = float64(i)
			}
			keys[id] = m
		}
		slices.SortStableFunc(row, func(a, b string) int {
			switch {
			case keys[a] < keys[b]:
				return -1
			case keys[a] > keys[b]:
				return 1
			default:
				return 0
			}
		})
	}
}

// neighborMedian returns the median position of the node's forward
// neighbors on the given adjacent rank, or false when it has none.
func (l *Layouter) neighborMedian(id string, adjRank int, pos map[string]int) (float64, bool) {
	var positions []int
	collect := func(other string, e graph.EdgeID) {
		if l.isBack(e) || other == id {
			return
		}
		if p, ok := pos[other]; ok {
			positions = append(positions, p)
		}
	}
	if adjRank < l.node(id).Rank {
		for _, p := range l.g.Predecessors(id) {
			collect(p, graph.EdgeID{Src: p, Dst: id})
		}
	} else {
		for _, s := range l.g.Successors(id) {
			collect(s, graph.EdgeID{Src: id, Dst: s})
		}
	}
	if len(positions) == 0 {
		return 0, false
	}
	slices.Sort(positions)
	mid := len(positions) / 2
	if len(positions)%2 == 1 {
		return float64(positions[mid]), true
	}
	return (float64(positions[mid-1]) + float64(positions[mid])) / 2, true
}

func (l *Layouter) snapshotRanks() map[int][]string {
	snap := make(map[int][]string, len(l.ranks))
	for r, row := range l.ranks {
		snap[r] = slices.Clone(row)
	}
	return snap
}
