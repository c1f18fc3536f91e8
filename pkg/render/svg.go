package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/flowgraph/pkg/graphio"
)

const (
	svgMargin   = 10.0
	svgFontSize = 12.0
)

// RenderSVG draws a computed layout as a standalone SVG document. Nodes are
// rounded boxes at their computed coordinates, forward edges follow their
// routed polylines with an arrowhead, and back-edges are dashed.
func RenderSVG(l graphio.Layout) []byte {
	var buf bytes.Buffer
	w := l.Width + 2*svgMargin
	h := l.Height + 2*svgMargin
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="7" markerHeight="7" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/></marker></defs>` + "\n")
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", svgMargin, svgMargin)

	for _, e := range l.Edges {
		if len(e.Points) < 2 {
			continue
		}
		var pts []string
		for _, p := range e.Points {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		}
		dash := ""
		if e.Backedge {
			dash = ` stroke-dasharray="4,3"`
		}
		fmt.Fprintf(&buf,
			`    <polyline points="%s" fill="none" stroke="#333" stroke-width="1.5"%s marker-end="url(#arrow)"/>`+"\n",
			strings.Join(pts, " "), dash)
	}

	for _, n := range l.Nodes {
		fill := "#ffffff"
		switch n.Kind {
		case "branch":
			fill = "#fff3d6"
		case "loop", "loop-inverted":
			fill = "#e3efff"
		}
		fmt.Fprintf(&buf,
			`    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="#333" stroke-width="1.5"/>`+"\n",
			n.X-n.Width/2, n.Y-n.Height/2, n.Width, n.Height, fill)
		label := n.Label
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&buf,
			`    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="monospace" font-size="%.0f">%s</text>`+"\n",
			n.X, n.Y, svgFontSize, escapeText(label))
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
