package layout

// assignCoordinates places every node: ranks are stacked top to bottom with
// LayerSpacing between them, and within a rank nodes sit left to right with
// NodeSpacing between their boundaries. Nodes are centered vertically on
// their rank band. Forward edges between adjacent ranks get their straight
// two-point polyline here.
func (l *Layouter) assignCoordinates() error {
	y := 0.0
	for r := 0; r < len(l.ranks); r++ {
		row := l.ranks[r]

		height := 0.0
		for _, id := range row {
			if h := l.node(id).Height; h > height {
				height = h
			}
		}
		l.rankHeight[r] = height

		x := 0.0
		for i, id := range row {
			n := l.node(id)
			if i > 0 {
				x += l.cfg.NodeSpacing + n.Width/2
			} else {
				x = n.Width / 2
			}
			n.X = x
			n.Y = y + height/2
			x += n.Width / 2
		}
		y += height + l.cfg.LayerSpacing
	}

	for _, e := range l.g.Edges() {
		if l.isBack(e) || e.Src == e.Dst {
			continue
		}
		src := l.node(e.Src)
		dst := l.node(e.Dst)
		if dst.Rank != src.Rank+1 {
			continue
		}
		p, _ := l.g.Edge(e.Src, e.Dst)
		p.Points = []Point{
			{X: src.X, Y: src.Y + src.Height/2},
			{X: dst.X, Y: dst.Y - dst.Height/2},
		}
	}
	return nil
}
