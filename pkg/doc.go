// Package pkg provides the core libraries for flowgraph control-flow layout.
//
// # Overview
//
// flowgraph computes layered drawings for directed control-flow graphs that
// may contain arbitrary cycles. The pkg directory is organized by concern:
//
//  1. [graph] - generic directed-graph container and DFS traversal
//  2. [dominance] - dominator and post-dominator trees
//  3. [cycles] - SCCs, elementary cycles, back-edge classification
//  4. [layout] - the six-phase layout pipeline
//  5. [graphio] - JSON serialization for graphs and layouts
//  6. [render] - SVG and Graphviz DOT output
//
// # Architecture
//
// The typical data flow:
//
//	graph.json
//	     ↓
//	[graphio] package (deserialize, validate)
//	     ↓
//	[layout] package (rank → normalize → order → place → route)
//	     ↓      using [dominance] and [cycles] during preparation
//	[graphio] / [render] packages (layout.json, SVG, DOT)
//
// # Quick Start
//
//	g := layout.NewGraph()
//	g.AddEdge("entry", "loop", &layout.Edge{})
//	g.AddEdge("loop", "body", &layout.Edge{})
//	g.AddEdge("body", "loop", &layout.Edge{})
//	g.AddEdge("loop", "exit", &layout.Edge{})
//
//	l, err := layout.New(g, layout.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := l.Run(ctx); err != nil {
//	    return err
//	}
//	// Read x/y/rank/order off the node payloads, polylines off the edges.
package pkg
