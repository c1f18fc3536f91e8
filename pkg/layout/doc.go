// Package layout implements an automatic layout engine for directed
// control-flow graphs that may contain arbitrary cycles, nested and
// overlapping loops, irreducible control flow, and multiple entry or exit
// points.
//
// Given a graph of sized nodes, the engine computes for every node a
// vertical rank, a within-rank order, and concrete center coordinates, and
// for every edge a polyline of waypoints. Back-edges get a dedicated routing
// discipline: they are grouped into a nesting structure and placed into
// numbered lanes to the left of the graph so they collide neither with
// forward flow nor with each other.
//
// # Pipeline
//
// A [Layouter] is single-use: construct with [New] (which runs the
// preparation phase - dominators, post-dominators, back-edge
// classification), call [Layouter.Run] once, read the results off the graph,
// and discard. Run executes six phases in order:
//
//  1. Ranking: breadth-first rank assignment with rank-space reservation
//     for loop and branch bodies, then dense rank contraction.
//  2. Normalization: multi-rank forward edges are subdivided by zero-size
//     dummy nodes so every edge spans exactly one rank.
//  3. Ordering: iterative median heuristic minimizing edge crossings,
//     scored with a Fenwick-tree crossing counter.
//  4. Coordinates: rank-by-rank placement using the configured layer and
//     node spacing.
//  5. De-normalization: dummy chains are fused back into their original
//     edges as straightened skip-lane polylines.
//  6. Back-edge routing: nesting sweep, lane assignment, rectangular
//     polylines left of the graph.
//
// The input graph is exclusively owned and mutated in place for the
// duration of Run (dummy nodes are inserted and removed); callers must not
// mutate it concurrently. The pipeline is synchronous and deterministic:
// the same input graph always produces the same layout.
//
// # Failure Model
//
// Unsupported input (no sources, no sinks, a loop header with multiple
// canonical back-edges, a loop without exit candidates) fails loudly with a
// structured error rather than producing a wrong drawing. Edges left
// unrouted after phase 6 are reported as warnings, not errors, so partial
// output remains usable.
package layout
