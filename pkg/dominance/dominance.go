// Package dominance computes immediate dominators and dominator trees for
// directed graphs with a designated root.
//
// Node D dominates node N if every path from the root to N passes through D.
// Post-dominators are the dual relation, obtained by running the same
// computation on the reversed graph from the designated end node; use
// [NewPostTree] for that.
//
// The computation assumes every node of interest is reachable from the root;
// unreachable nodes are simply absent from the result. That precondition is
// the caller's responsibility.
package dominance

import (
	"slices"

	"github.com/matzehuels/flowgraph/pkg/graph"
)

// Immediate computes the immediate dominator of every node reachable from
// root, using the iterative fixpoint algorithm over reverse postorder
// (Cooper, Harvey, Kennedy). The root maps to itself.
func Immediate[N, E any](g *graph.Graph[N, E], root string) map[string]string {
	rpo := graph.ReversePostOrder(g, root)
	index := make(map[string]int, len(rpo))
	for i, id := range rpo {
		index[id] = i
	}

	idom := make(map[string]string, len(rpo))
	idom[root] = root

	// intersect walks both fingers up the current dominator tree until they
	// meet, comparing by reverse-postorder index.
	intersect := func(a, b string) string {
		for a != b {
			for index[a] > index[b] {
				a = idom[a]
			}
			for index[b] > index[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for _, id := range rpo {
			if id == root {
				continue
			}
			newIdom := ""
			for _, pred := range g.Predecessors(id) {
				if _, ok := idom[pred]; !ok {
					continue // not yet processed, or unreachable
				}
				if newIdom == "" {
					newIdom = pred
				} else {
					newIdom = intersect(pred, newIdom)
				}
			}
			if newIdom != "" && idom[id] != newIdom {
				idom[id] = newIdom
				changed = true
			}
		}
	}
	return idom
}

// Tree is a dominator tree rooted at a designated node.
type Tree struct {
	// Root is the designated root node.
	Root string
	// IDom maps each node to its immediate dominator. The root maps to itself.
	IDom map[string]string
	// Children maps each node to its dominator-tree successors, sorted.
	Children map[string][]string
	// Level maps each node to its distance from the root in the tree.
	Level map[string]int
	// Dominators maps each node to the set of all its dominators: the
	// ancestors in the tree, transitively, excluding the node itself.
	Dominators map[string]map[string]struct{}
}

// NewTree computes the full dominator tree of g from root.
func NewTree[N, E any](g *graph.Graph[N, E], root string) *Tree {
	return buildTree(Immediate(g, root), root, graph.ReversePostOrder(g, root))
}

// NewPostTree computes the post-dominator tree of g, rooted at the
// designated end node, by dominating over the reversed graph.
func NewPostTree[N, E any](g *graph.Graph[N, E], end string) *Tree {
	r := g.Reversed()
	return buildTree(Immediate(r, end), end, graph.ReversePostOrder(r, end))
}

// buildTree derives children, levels and full dominator sets from an
// immediate-dominator map. rpo guarantees parents are processed before
// children, so levels and sets can be filled in one pass.
func buildTree(idom map[string]string, root string, rpo []string) *Tree {
	t := &Tree{
		Root:       root,
		IDom:       idom,
		Children:   make(map[string][]string, len(idom)),
		Level:      make(map[string]int, len(idom)),
		Dominators: make(map[string]map[string]struct{}, len(idom)),
	}

	t.Level[root] = 0
	t.Dominators[root] = map[string]struct{}{}

	for _, id := range rpo {
		if id == root {
			continue
		}
		parent, ok := idom[id]
		if !ok {
			continue
		}
		t.Children[parent] = append(t.Children[parent], id)
		t.Level[id] = t.Level[parent] + 1

		doms := make(map[string]struct{}, len(t.Dominators[parent])+1)
		for d := range t.Dominators[parent] {
			doms[d] = struct{}{}
		}
		doms[parent] = struct{}{}
		t.Dominators[id] = doms
	}
	for _, kids := range t.Children {
		slices.Sort(kids)
	}
	return t
}

// Dominates reports whether d dominates n. A node does not dominate itself.
func (t *Tree) Dominates(d, n string) bool {
	_, ok := t.Dominators[n][d]
	return ok
}

// NumDominators returns the size of the node's all-dominators set. Used for
// O(1) containment arithmetic when reserving rank space for loop and branch
// bodies. Returns 0 for unknown nodes.
func (t *Tree) NumDominators(id string) int {
	return len(t.Dominators[id])
}
