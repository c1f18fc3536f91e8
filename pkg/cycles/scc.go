package cycles

import (
	"iter"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// sccFrame is one entry of the explicit Tarjan stack: a node plus a cursor
// into its sorted successor list.
type sccFrame struct {
	id   string
	next int
}

// StronglyConnected returns a lazy sequence of the strongly connected
// components of g, each as a set of node IDs. Singleton components are
// included; callers interested in cycles must additionally check singletons
// for self-edges.
//
// The implementation is an iterative Tarjan variant with an explicit stack,
// so component detection works on graphs far deeper than the goroutine
// stack would allow. Roots are tried in sorted order, making the emission
// order deterministic.
func StronglyConnected[N, E any](g *graph.Graph[N, E]) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		next := 0
		index := make(map[string]int, g.NodeCount())
		lowlink := make(map[string]int, g.NodeCount())
		onStack := make(map[string]bool, g.NodeCount())
		var stack []string

		push := func(id string) sccFrame {
			index[id] = next
			lowlink[id] = next
			next++
			stack = append(stack, id)
			onStack[id] = true
			return sccFrame{id: id}
		}

		for _, root := range g.NodeIDs() {
			if _, seen := index[root]; seen {
				continue
			}

			frames := []sccFrame{push(root)}
			for len(frames) > 0 {
				frame := &frames[len(frames)-1]
				succs := g.Successors(frame.id)

				if frame.next < len(succs) {
					w := frame.next
					frame.next++
					dst := succs[w]
					if _, seen := index[dst]; !seen {
						frames = append(frames, push(dst))
					} else if onStack[dst] && index[dst] < lowlink[frame.id] {
						lowlink[frame.id] = index[dst]
					}
					continue
				}

				// Finished this node: propagate lowlink to the parent and
				// pop a component if this is its root.
				id := frame.id
				frames = frames[:len(frames)-1]
				if len(frames) > 0 {
					if parent := &frames[len(frames)-1]; lowlink[id] < lowlink[parent.id] {
						lowlink[parent.id] = lowlink[id]
					}
				}
				if lowlink[id] == index[id] {
					var comp []string
					for {
						top := stack[len(stack)-1]
						stack = stack[:len(stack)-1]
						onStack[top] = false
						comp = append(comp, top)
						if top == id {
							break
						}
					}
					if !yield(comp) {
						return
					}
				}
			}
		}
	}
}
