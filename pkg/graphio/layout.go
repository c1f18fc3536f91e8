package graphio

import (
	"encoding/json"
	"os"
	"slices"

	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graph"
	"github.com/matzehuels/flowgraph/pkg/layout"
)

// Layout is the output format of the layout pipeline: every node with its
// computed coordinates, rank, order and block kind, every edge with its
// routed polyline, and the rank assignment as a whole.
type Layout struct {
	// Width, Height are the bounding-box dimensions of the drawing.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Nodes []LayoutNode `json:"nodes"`
	Edges []LayoutEdge `json:"edges"`

	// Ranks maps each rank index to the node IDs on it, in drawing order.
	Ranks map[int][]string `json:"ranks,omitempty"`
}

// LayoutNode is one positioned node. X and Y are center coordinates.
type LayoutNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Rank   int     `json:"rank"`
	Order  int     `json:"order"`
	Kind   string  `json:"kind,omitempty"` // branch, loop, loop-inverted
}

// LayoutEdge is one routed edge.
type LayoutEdge struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Points   []layout.Point `json:"points"`
	Backedge bool           `json:"backedge,omitempty"`
}

// ExportLayout converts a laid-out graph into the output format. labels may
// be nil; backedges marks which edges were routed as back-edges (see
// [layout.Layouter.Backedges]).
func ExportLayout(lg *layout.Graph, labels map[string]string, backedges []graph.EdgeID) Layout {
	backs := make(map[graph.EdgeID]struct{}, len(backedges))
	for _, e := range backedges {
		backs[e] = struct{}{}
	}

	out := Layout{Ranks: make(map[int][]string)}
	maxX, maxY := 0.0, 0.0

	type ranked struct {
		id    string
		order int
	}
	rows := make(map[int][]ranked)

	for _, id := range lg.NodeIDs() {
		n, _ := lg.Node(id)
		if n == nil {
			n = &layout.Node{}
		}
		ln := LayoutNode{
			ID:     id,
			Label:  labels[id],
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
			Rank:   n.Rank,
			Order:  n.Order,
		}
		if ln.Label == id {
			ln.Label = ""
		}
		if n.Kind != layout.BlockRegular {
			ln.Kind = n.Kind.String()
		}
		out.Nodes = append(out.Nodes, ln)
		rows[n.Rank] = append(rows[n.Rank], ranked{id: id, order: n.Order})

		if r := n.X + n.Width/2; r > maxX {
			maxX = r
		}
		if b := n.Y + n.Height/2; b > maxY {
			maxY = b
		}
	}

	for r, row := range rows {
		slices.SortFunc(row, func(a, b ranked) int { return a.order - b.order })
		ids := make([]string, len(row))
		for i, n := range row {
			ids[i] = n.id
		}
		out.Ranks[r] = ids
	}

	for _, e := range lg.Edges() {
		p, _ := lg.Edge(e.Src, e.Dst)
		le := LayoutEdge{From: e.Src, To: e.Dst}
		if p != nil {
			le.Points = p.Points
		}
		if _, ok := backs[graph.EdgeID{Src: e.Src, Dst: e.Dst}]; ok {
			le.Backedge = true
		}
		out.Edges = append(out.Edges, le)
		for _, pt := range le.Points {
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}
	}

	out.Width = maxX
	out.Height = maxY
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if len(l.Nodes) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must contain nodes")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
