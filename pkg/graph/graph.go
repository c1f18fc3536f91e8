package graph

import (
	"errors"
	"iter"
	"slices"
)

var (
	// ErrNodeNotFound is returned by lookup methods when the requested node
	// does not exist in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned by lookup methods when the requested edge
	// does not exist in the graph.
	ErrEdgeNotFound = errors.New("edge not found")
)

// EdgeID identifies a directed edge by its endpoints.
type EdgeID struct {
	Src string
	Dst string
}

// Graph is a directed graph with node payloads of type N and edge payloads
// of type E. The zero value is not usable - use New.
type Graph[N, E any] struct {
	nodes map[string]N
	succ  map[string]map[string]E
	pred  map[string]map[string]struct{}
}

// New creates an empty graph.
func New[N, E any]() *Graph[N, E] {
	return &Graph[N, E]{
		nodes: make(map[string]N),
		succ:  make(map[string]map[string]E),
		pred:  make(map[string]map[string]struct{}),
	}
}

// AddNode inserts a node with the given payload. If the node already exists,
// its payload is replaced and its edges are left untouched.
func (g *Graph[N, E]) AddNode(id string, payload N) {
	if _, ok := g.nodes[id]; !ok {
		g.succ[id] = make(map[string]E)
		g.pred[id] = make(map[string]struct{})
	}
	g.nodes[id] = payload
}

// RemoveNode deletes a node and every edge incident to it.
// Returns ErrNodeNotFound if the node does not exist.
func (g *Graph[N, E]) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	for dst := range g.succ[id] {
		delete(g.pred[dst], id)
	}
	for src := range g.pred[id] {
		delete(g.succ[src], id)
	}
	delete(g.nodes, id)
	delete(g.succ, id)
	delete(g.pred, id)
	return nil
}

// AddEdge inserts a directed edge src→dst with the given payload. Missing
// endpoints are auto-created with zero-value node payloads. Re-inserting an
// existing edge replaces its payload.
func (g *Graph[N, E]) AddEdge(src, dst string, payload E) {
	var zero N
	if _, ok := g.nodes[src]; !ok {
		g.AddNode(src, zero)
	}
	if _, ok := g.nodes[dst]; !ok {
		g.AddNode(dst, zero)
	}
	g.succ[src][dst] = payload
	g.pred[dst][src] = struct{}{}
}

// RemoveEdge deletes the edge src→dst.
// Returns ErrEdgeNotFound if the edge does not exist.
func (g *Graph[N, E]) RemoveEdge(src, dst string) error {
	if _, ok := g.succ[src][dst]; !ok {
		return ErrEdgeNotFound
	}
	delete(g.succ[src], dst)
	delete(g.pred[dst], src)
	return nil
}

// HasNode reports whether the node exists.
func (g *Graph[N, E]) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge src→dst exists.
func (g *Graph[N, E]) HasEdge(src, dst string) bool {
	_, ok := g.succ[src][dst]
	return ok
}

// Node returns the payload of the node with the given ID.
// Returns ErrNodeNotFound if the node does not exist.
func (g *Graph[N, E]) Node(id string) (N, error) {
	n, ok := g.nodes[id]
	if !ok {
		var zero N
		return zero, ErrNodeNotFound
	}
	return n, nil
}

// Edge returns the payload of the edge src→dst.
// Returns ErrEdgeNotFound if the edge does not exist.
func (g *Graph[N, E]) Edge(src, dst string) (E, error) {
	e, ok := g.succ[src][dst]
	if !ok {
		var zero E
		return zero, ErrEdgeNotFound
	}
	return e, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph[N, E]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph[N, E]) EdgeCount() int {
	count := 0
	for _, out := range g.succ {
		count += len(out)
	}
	return count
}

// NodeIDs returns all node IDs in sorted order.
func (g *Graph[N, E]) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns all edges in sorted order (by source, then destination).
func (g *Graph[N, E]) Edges() []EdgeID {
	edges := make([]EdgeID, 0, g.EdgeCount())
	for _, src := range g.NodeIDs() {
		for _, dst := range g.Successors(src) {
			edges = append(edges, EdgeID{Src: src, Dst: dst})
		}
	}
	return edges
}

// Successors returns the IDs of nodes this node has edges to, in sorted order.
// Returns nil if the node has no successors or does not exist.
func (g *Graph[N, E]) Successors(id string) []string {
	out := g.succ[id]
	if len(out) == 0 {
		return nil
	}
	ids := make([]string, 0, len(out))
	for dst := range out {
		ids = append(ids, dst)
	}
	slices.Sort(ids)
	return ids
}

// Predecessors returns the IDs of nodes that have edges to this node, in
// sorted order. Returns nil if the node has no predecessors or does not exist.
func (g *Graph[N, E]) Predecessors(id string) []string {
	in := g.pred[id]
	if len(in) == 0 {
		return nil
	}
	ids := make([]string, 0, len(in))
	for src := range in {
		ids = append(ids, src)
	}
	slices.Sort(ids)
	return ids
}

// SuccSeq returns a lazy iterator over the successors of the node, in sorted
// order. The graph must not be mutated during iteration.
func (g *Graph[N, E]) SuccSeq(id string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, dst := range g.Successors(id) {
			if !yield(dst) {
				return
			}
		}
	}
}

// PredSeq returns a lazy iterator over the predecessors of the node, in
// sorted order. The graph must not be mutated during iteration.
func (g *Graph[N, E]) PredSeq(id string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, src := range g.Predecessors(id) {
			if !yield(src) {
				return
			}
		}
	}
}

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node does not exist.
func (g *Graph[N, E]) OutDegree(id string) int { return len(g.succ[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node does not exist.
func (g *Graph[N, E]) InDegree(id string) int { return len(g.pred[id]) }

// Sources returns nodes with no incoming edges, in sorted order.
func (g *Graph[N, E]) Sources() []string {
	var sources []string
	for _, id := range g.NodeIDs() {
		if len(g.pred[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in sorted order.
func (g *Graph[N, E]) Sinks() []string {
	var sinks []string
	for _, id := range g.NodeIDs() {
		if len(g.succ[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// Reversed returns a new graph with every edge flipped. Node and edge
// payloads are preserved (shared, not deep-copied).
func (g *Graph[N, E]) Reversed() *Graph[N, E] {
	r := New[N, E]()
	for id, n := range g.nodes {
		r.AddNode(id, n)
	}
	for src, out := range g.succ {
		for dst, e := range out {
			r.AddEdge(dst, src, e)
		}
	}
	return r
}

// Copy returns a structural copy of the graph. Payloads are copied by value;
// pointer payloads still alias the originals.
func (g *Graph[N, E]) Copy() *Graph[N, E] {
	c := New[N, E]()
	for id, n := range g.nodes {
		c.AddNode(id, n)
	}
	for src, out := range g.succ {
		for dst, e := range out {
			c.AddEdge(src, dst, e)
		}
	}
	return c
}

// Subgraph returns the subgraph induced by the given node set: only nodes in
// the set, and only edges with both endpoints in the set, are kept.
// IDs in the set that are not in the graph are ignored.
func (g *Graph[N, E]) Subgraph(ids map[string]struct{}) *Graph[N, E] {
	s := New[N, E]()
	for id := range ids {
		if n, ok := g.nodes[id]; ok {
			s.AddNode(id, n)
		}
	}
	for src := range ids {
		for dst, e := range g.succ[src] {
			if _, ok := ids[dst]; ok {
				s.AddEdge(src, dst, e)
			}
		}
	}
	return s
}
