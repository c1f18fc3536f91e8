package graphio

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/layout"
)

// Graph is the canonical input format for control-flow graphs: a flat node
// list with display sizes and a flat edge list.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one serialized graph node.
type Node struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"` // display label, defaults to ID
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is one serialized directed edge.
type Edge struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Weight float64 `json:"weight,omitempty"`
}

// Validate checks the structural rules of the format: non-empty unique node
// IDs and edge endpoints that name declared nodes.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "node with empty id")
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node id %s", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := seen[e.From]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s->%s references unknown node %s", e.From, e.To, e.From)
		}
		if _, ok := seen[e.To]; !ok {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s->%s references unknown node %s", e.From, e.To, e.To)
		}
	}
	return nil
}

// ToLayoutGraph converts the serialized graph into the layouter's graph
// type. Labels are not part of the layout graph; use Labels to carry them
// into the output format.
func ToLayoutGraph(g Graph) (*layout.Graph, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	lg := layout.NewGraph()
	for _, n := range g.Nodes {
		lg.AddNode(n.ID, &layout.Node{Width: n.Width, Height: n.Height})
	}
	for _, e := range g.Edges {
		lg.AddEdge(e.From, e.To, &layout.Edge{Weight: e.Weight})
	}
	return lg, nil
}

// Labels returns the id -> display label mapping of the graph.
func (g Graph) Labels() map[string]string {
	labels := make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		labels[n.ID] = n.DisplayLabel()
	}
	return labels
}

// FromLayoutGraph converts a layout graph back to the serialization format.
// Nodes and edges are sorted for deterministic output.
func FromLayoutGraph(lg *layout.Graph, labels map[string]string) Graph {
	out := Graph{}
	for _, id := range lg.NodeIDs() {
		n, _ := lg.Node(id)
		node := Node{ID: id, Label: labels[id]}
		if n != nil {
			node.Width = n.Width
			node.Height = n.Height
		}
		if node.Label == id {
			node.Label = ""
		}
		out.Nodes = append(out.Nodes, node)
	}
	for _, e := range lg.Edges() {
		p, _ := lg.Edge(e.Src, e.Dst)
		edge := Edge{From: e.Src, To: e.Dst}
		if p != nil {
			edge.Weight = p.Weight
		}
		out.Edges = append(out.Edges, edge)
	}
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if a.From != b.From {
			if a.From < b.From {
				return -1
			}
			return 1
		}
		if a.To < b.To {
			return -1
		}
		if a.To > b.To {
			return 1
		}
		return 0
	})
	return out
}

// MarshalGraph serializes a Graph to pretty-printed JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGraph deserializes JSON bytes to a Graph and validates it.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal graph")
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadGraphFile reads a Graph from a JSON file.
func ReadGraphFile(path string) (Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	return UnmarshalGraph(data)
}

// WriteGraphFile writes a Graph to a JSON file.
func WriteGraphFile(g Graph, path string) error {
	data, err := MarshalGraph(g)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
