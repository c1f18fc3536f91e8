package layout

import (
	"github.com/matzehuels/flowgraph/pkg/graph"
)

// Point is a 2D coordinate in layout space. X grows rightward, Y downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BlockKind classifies the control-flow role the layouter inferred for a
// node. It is explicit metadata on the node, not derived from payload types.
type BlockKind int

const (
	// BlockRegular is a node with no special control-flow role.
	BlockRegular BlockKind = iota
	// BlockBranch is a node with more than one forward successor.
	BlockBranch
	// BlockLoopHead heads a loop whose exit leaves from the header itself
	// (a while-style loop).
	BlockLoopHead
	// BlockLoopInverted heads a loop whose exit leaves from the back-edge
	// source (a do-while-style loop).
	BlockLoopInverted
)

// String returns a short name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockBranch:
		return "branch"
	case BlockLoopHead:
		return "loop"
	case BlockLoopInverted:
		return "loop-inverted"
	default:
		return "regular"
	}
}

// Node is the layout payload of a graph node. Width and Height are supplied
// by the caller and read-only to the layouter; everything else is computed.
type Node struct {
	// X, Y are the node's center coordinates, assigned in phase 4.
	X, Y float64
	// Width, Height are the node's dimensions, caller-supplied.
	Width, Height float64
	// Rank is the vertical layer index, assigned in phase 1 and densely
	// renumbered by rank contraction.
	Rank int
	// Order is the position within the rank, used only to sort nodes
	// before coordinate assignment.
	Order int
	// Kind is the control-flow role inferred during ranking.
	Kind BlockKind
}

// Edge is the layout payload of a graph edge.
type Edge struct {
	// Points is the routed polyline from source boundary to destination
	// boundary, populated by phases 4-6.
	Points []Point
	// Weight biases the crossing-minimization phase: heavier edges are
	// more expensive to cross. Values <= 0 count as 1.
	Weight float64
}

// Graph is the concrete graph type the layouter operates on.
type Graph = graph.Graph[*Node, *Edge]

// NewGraph creates an empty layout graph.
func NewGraph() *Graph {
	return graph.New[*Node, *Edge]()
}
