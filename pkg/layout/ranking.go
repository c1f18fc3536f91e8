package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graph"
)

// rank assigns a vertical rank to every node. Forward edges (everything
// except back-edges) are treated as a DAG and ranked breadth-first: a node
// is ranked once all its forward predecessors are, at one more than the
// deepest of them, or deeper when a loop or branch reservation claims extra
// vertical space below a header. A final contraction pass renumbers the
// used ranks densely.
func (l *Layouter) rank() error {
	indeg := make(map[string]int)
	for _, e := range l.g.Edges() {
		if l.isBack(e) {
			continue
		}
		indeg[e.Dst]++
	}

	rank := map[string]int{l.start: 0}
	prop := make(map[string]int)    // deepest forward-predecessor proposal
	reserve := make(map[string]int) // lower bounds claimed by loop/branch headers

	queue := []string{l.start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		if err := l.classify(u, rank, reserve); err != nil {
			return err
		}
		for _, s := range l.g.Successors(u) {
			if l.isBack(graph.EdgeID{Src: u, Dst: s}) {
				continue
			}
			if p := rank[u] + 1; p > prop[s] {
				prop[s] = p
			}
			indeg[s]--
			if indeg[s] == 0 {
				r := prop[s]
				if res := reserve[s]; res > r {
					r = res
				}
				rank[s] = r
				queue = append(queue, s)
			}
		}
	}

	if len(rank) != l.g.NodeCount() {
		for _, id := range l.g.NodeIDs() {
			if _, ok := rank[id]; !ok {
				return errors.New(errors.ErrCodeUnsupportedInput,
					"node %s is not reachable from %s", id, l.start)
			}
		}
	}

	l.contract(rank)
	return nil
}

// classify inspects a freshly ranked node: loop headers reserve rank space
// for their body and tag themselves with the loop kind, branch nodes
// reserve space down to their merge point.
func (l *Layouter) classify(u string, rank, reserve map[string]int) error {
	if backs := l.byTarget[u]; len(backs) > 0 {
		return l.classifyLoop(u, backs, rank, reserve)
	}

	forward := 0
	for _, s := range l.g.Successors(u) {
		if !l.isBack(graph.EdgeID{Src: u, Dst: s}) {
			forward++
		}
	}
	if forward > 1 {
		l.node(u).Kind = BlockBranch
		l.reserveMerge(u, rank, reserve)
	}
	return nil
}

// classifyLoop handles a node that is the target of a canonical back-edge:
// it computes the natural loop body, picks the exit candidates, and reserves
// one rank per body node below the header so the exits land beneath the
// whole loop.
func (l *Layouter) classifyLoop(h string, backs []graph.EdgeID, rank, reserve map[string]int) error {
	if len(backs) > 1 {
		return errors.New(errors.ErrCodeMultipleBackedges,
			"node %s is the target of %d canonical back-edges", h, len(backs))
	}
	tail := backs[0].Src

	body := l.loopBody(tail, h)
	exits := l.exitCandidates(body)
	if len(exits) == 0 {
		return errors.New(errors.ErrCodeNoExitCandidate,
			"loop headed by %s has no exit candidate", h)
	}

	// Among several candidates keep those closest to the graph exit in the
	// post-dominator tree; ties keep all.
	minLevel := math.MaxInt
	for _, e := range exits {
		if lv, ok := l.post.Level[e]; ok && lv < minLevel {
			minLevel = lv
		}
	}
	kept := exits[:0]
	for _, e := range exits {
		if lv, ok := l.post.Level[e]; !ok || lv == minLevel {
			kept = append(kept, e)
		}
	}

	for _, e := range kept {
		if r := rank[h] + len(body); r > reserve[e] {
			reserve[e] = r
		}
	}

	n := l.node(h)
	n.Kind = BlockLoopHead
	exitsFromHead := false
	exitsFromTail := false
	for _, e := range kept {
		if l.g.HasEdge(h, e) {
			exitsFromHead = true
		}
		if l.g.HasEdge(tail, e) {
			exitsFromTail = true
		}
	}
	if !exitsFromHead && exitsFromTail {
		n.Kind = BlockLoopInverted
	}
	return nil
}

// loopBody returns the natural loop body of the back-edge tail->h: the
// header plus every node that reaches the tail without passing through the
// header.
func (l *Layouter) loopBody(tail, h string) map[string]struct{} {
	body := map[string]struct{}{h: {}}
	if tail == h {
		return body
	}
	body[tail] = struct{}{}
	stack := []string{tail}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range l.g.Predecessors(n) {
			if _, ok := body[p]; !ok {
				body[p] = struct{}{}
				stack = append(stack, p)
			}
		}
	}
	return body
}

// exitCandidates returns the successors of body nodes that lie outside the
// body, sorted and deduplicated.
func (l *Layouter) exitCandidates(body map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var exits []string
	for n := range body {
		for _, s := range l.g.Successors(n) {
			if _, inside := body[s]; inside {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			exits = append(exits, s)
		}
	}
	slices.Sort(exits)
	return exits
}

// reserveMerge pushes the merge point of a branch down far enough that both
// arms fit between the branch and the merge. The merge is the immediate
// post-dominator when it is a direct successor, otherwise the first
// dominator-tree child that is not a direct successor.
func (l *Layouter) reserveMerge(u string, rank, reserve map[string]int) {
	m := l.post.IDom[u]
	if m == "" || m == u {
		return
	}
	merge := ""
	if l.g.HasEdge(u, m) {
		merge = m
	} else {
		for _, c := range l.dom.Children[u] {
			if c != u && !l.g.HasEdge(u, c) {
				merge = c
				break
			}
		}
	}
	if merge == "" {
		return
	}
	off := l.dom.NumDominators(merge) - l.dom.NumDominators(u)
	if off < 1 {
		off = 1
	}
	if r := rank[u] + off; r > reserve[merge] {
		reserve[merge] = r
	}
}

// contract renumbers the used ranks densely, writes the final rank into
// every node payload, builds the per-rank node lists, and records the rank
// span of every back-edge for the routing phase.
func (l *Layouter) contract(rank map[string]int) {
	used := make([]int, 0, len(rank))
	seen := make(map[int]struct{})
	for _, r := range rank {
		if _, ok := seen[r]; !ok {
			seen[r] = struct{}{}
			used = append(used, r)
		}
	}
	slices.Sort(used)
	remap := make(map[int]int, len(used))
	for i, r := range used {
		remap[r] = i
	}

	for _, id := range l.g.NodeIDs() {
		n := l.node(id)
		n.Rank = remap[rank[id]]
		l.ranks[n.Rank] = append(l.ranks[n.Rank], id)
	}
	for _, b := range l.backs {
		b.srcRank = l.node(b.id.Src).Rank
		b.dstRank = l.node(b.id.Dst).Rank
	}
}
