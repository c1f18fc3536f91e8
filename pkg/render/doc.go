// Package render turns graphs and computed layouts into viewable artifacts.
//
// Two render paths exist. [ToDOT] plus [RenderDOTSVG] hand the graph
// structure to Graphviz for a quick structural preview that ignores the
// computed layout. [RenderSVG] draws a [graphio.Layout] faithfully: every
// node at its computed coordinates and every edge along its routed
// polyline, with back-edges dashed.
package render
