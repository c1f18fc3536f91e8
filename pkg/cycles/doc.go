// Package cycles provides cycle analysis for directed graphs: strongly
// connected components, elementary-cycle enumeration, and back-edge
// classification.
//
// The layout pipeline uses this package to identify loops in a control-flow
// graph before ranking. Back-edges are defined operationally: an edge whose
// destination is locked on the depth-first traversal stack when the edge is
// explored. Strict classification additionally resolves, for every node
// targeted by more than one back-edge, a single canonical back-edge (the one
// belonging to the longest elementary cycle through that target); the rest
// are "eclipsed" - still real edges, but excluded from loop-nesting
// computations.
//
// All results are deterministic: components, cycles, and back-edges are
// derived from sorted adjacency, and ties between equal-length cycles are
// broken by the lowest back-edge source ID.
package cycles
