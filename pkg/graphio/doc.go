// Package graphio defines the JSON serialization formats for control-flow
// graphs and computed layouts.
//
// Two formats exist: [Graph] is the input format (structure plus node
// sizes), [Layout] is the output format (structure plus coordinates,
// ranks, and routed polylines). Both are designed for round-trip fidelity
// and deterministic output: nodes and edges are always sorted by ID.
package graphio
