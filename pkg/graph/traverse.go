package graph

// EdgeKind classifies an edge encountered during depth-first traversal.
type EdgeKind int

const (
	// TreeEdge leads to a node not yet visited.
	TreeEdge EdgeKind = iota
	// BackEdge leads to a node currently locked on the traversal stack.
	// Back-edges are what define loops in a control-flow graph.
	BackEdge
	// CrossEdge leads to a node whose traversal already completed
	// (forward and cross edges are not distinguished).
	CrossEdge
)

// String returns a short name for the edge kind.
func (k EdgeKind) String() string {
	switch k {
	case TreeEdge:
		return "tree"
	case BackEdge:
		return "back"
	case CrossEdge:
		return "cross"
	}
	return "unknown"
}

// dfsFrame is one entry of the explicit traversal stack. Keeping the
// successor cursor in the frame avoids recursion, so traversal depth is
// bounded by heap, not goroutine stack.
type dfsFrame struct {
	id   string
	next int
}

// DFS performs an iterative depth-first traversal from start, invoking visit
// for every edge reachable from it. Each edge is reported exactly once with
// its classification. A node is locked while any of its successors are still
// being explored; an edge into a locked node is a back-edge, exactly
// mirroring recursive DFS with an implicit stack.
//
// Successors are explored in sorted order, so the traversal (and therefore
// the back-edge set) is deterministic. Nodes unreachable from start are not
// visited. Returning false from visit stops the traversal early.
func DFS[N, E any](g *Graph[N, E], start string, visit func(src, dst string, kind EdgeKind) bool) {
	if !g.HasNode(start) {
		return
	}

	const (
		unseen = iota
		locked
		done
	)
	state := map[string]int{start: locked}
	stack := []dfsFrame{{id: start}}

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		succs := g.Successors(frame.id)

		if frame.next >= len(succs) {
			state[frame.id] = done
			stack = stack[:len(stack)-1]
			continue
		}

		dst := succs[frame.next]
		frame.next++

		switch state[dst] {
		case unseen:
			if !visit(frame.id, dst, TreeEdge) {
				return
			}
			state[dst] = locked
			stack = append(stack, dfsFrame{id: dst})
		case locked:
			if !visit(frame.id, dst, BackEdge) {
				return
			}
		case done:
			if !visit(frame.id, dst, CrossEdge) {
				return
			}
		}
	}
}

// PostOrder returns the nodes reachable from start in depth-first postorder.
func PostOrder[N, E any](g *Graph[N, E], start string) []string {
	if !g.HasNode(start) {
		return nil
	}

	seen := map[string]bool{start: true}
	stack := []dfsFrame{{id: start}}
	var order []string

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]
		succs := g.Successors(frame.id)

		if frame.next >= len(succs) {
			order = append(order, frame.id)
			stack = stack[:len(stack)-1]
			continue
		}

		dst := succs[frame.next]
		frame.next++
		if !seen[dst] {
			seen[dst] = true
			stack = append(stack, dfsFrame{id: dst})
		}
	}
	return order
}

// ReversePostOrder returns the nodes reachable from start in reverse
// postorder, a topological-like order compatible with dominator relaxation.
func ReversePostOrder[N, E any](g *Graph[N, E], start string) []string {
	order := PostOrder(g, start)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
