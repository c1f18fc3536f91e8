// Package graph provides a generic directed-graph container used by every
// algorithm in flowgraph.
//
// A [Graph] stores opaque string node identifiers, each carrying a
// caller-supplied payload, and directed edges between them, each carrying an
// edge payload. Self-edges are permitted. Multiple edges between the same
// ordered pair are not distinguished: re-inserting an edge replaces its
// payload.
//
// # Endpoint Policy
//
// AddEdge auto-creates missing endpoint nodes with zero-value payloads. This
// policy is applied uniformly: edge insertion never fails, and the invariant
// that every edge endpoint references an existing node holds at all times.
//
// # Determinism
//
// All enumeration methods (NodeIDs, Edges, Successors, Predecessors, Sources,
// Sinks) return results in sorted order. Algorithms built on this package are
// therefore deterministic given the same input graph, which the layout
// pipeline relies on for reproducible output.
//
// # Concurrency
//
// Graph is not safe for concurrent use without external synchronization.
package graph
