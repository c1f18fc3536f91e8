package layout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/cycles"
	"github.com/matzehuels/flowgraph/pkg/dominance"
	"github.com/matzehuels/flowgraph/pkg/errors"
	"github.com/matzehuels/flowgraph/pkg/graph"
	"github.com/matzehuels/flowgraph/pkg/observability"
)

// Layouter runs the layout pipeline over a single graph. It is single-use
// and not safe for concurrent use; the graph passed to New is owned by the
// layouter until Run returns.
type Layouter struct {
	g   *Graph
	cfg Config
	log *log.Logger

	start           string
	end             string
	artificialStart bool
	artificialEnd   bool

	dom  *dominance.Tree
	post *dominance.Tree

	// backs holds every back-edge (canonical and eclipsed), sorted; ranks
	// and lanes are filled in by later phases.
	backs    []*backedgeInfo
	backSet  map[graph.EdgeID]struct{}
	byTarget map[string][]graph.EdgeID

	// ranks maps each rank index to its node IDs, ordered after phase 3.
	ranks      map[int][]string
	rankHeight map[int]float64

	dummies    map[string]struct{}
	chains     map[graph.EdgeID][]string
	chainEdges map[graph.EdgeID]*Edge
	nextDummy  int

	warnings []string
	ran      bool
}

// backedgeInfo carries the routing state of one back-edge.
type backedgeInfo struct {
	id               graph.EdgeID
	srcRank, dstRank int
	lane             int
	children         []*backedgeInfo
}

// Option configures a Layouter.
type Option func(*Layouter)

// WithLogger sets the logger used for phase-level debug output. By default
// the layouter is silent.
func WithLogger(logger *log.Logger) Option {
	return func(l *Layouter) {
		if logger != nil {
			l.log = logger
		}
	}
}

// New prepares a layouter for the given graph: it validates the input,
// inserts artificial start/end nodes when the graph has several sources or
// sinks, computes dominator and post-dominator trees, and classifies
// back-edges. The graph is mutated in place; it must not be touched by the
// caller until Run returns.
func New(g *Graph, cfg Config, opts ...Option) (*Layouter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeUnsupportedInput, "cannot lay out an empty graph")
	}

	l := &Layouter{
		g:          g,
		cfg:        cfg,
		log:        log.New(io.Discard),
		backSet:    make(map[graph.EdgeID]struct{}),
		byTarget:   make(map[string][]graph.EdgeID),
		ranks:      make(map[int][]string),
		rankHeight: make(map[int]float64),
		dummies:    make(map[string]struct{}),
		chains:     make(map[graph.EdgeID][]string),
		chainEdges: make(map[graph.EdgeID]*Edge),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.fillPayloads()
	if err := l.prepareEndpoints(); err != nil {
		return nil, err
	}

	l.dom = dominance.NewTree(g, l.start)
	l.post = dominance.NewPostTree(g, l.end)

	bedges, err := cycles.Find(g, l.start, true)
	if err != nil {
		return nil, err
	}
	for _, e := range bedges.All {
		l.backSet[e] = struct{}{}
		l.backs = append(l.backs, &backedgeInfo{id: e})
	}
	for _, e := range bedges.Canonical {
		l.byTarget[e.Dst] = append(l.byTarget[e.Dst], e)
	}
	return l, nil
}

// Run executes the six layout phases. It may be called once; the context is
// passed to observability hooks and is not used for cancellation.
func (l *Layouter) Run(ctx context.Context) error {
	if l.ran {
		return errors.New(errors.ErrCodeInternal, "layouter has already run")
	}
	l.ran = true

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, l.g.NodeCount(), l.g.EdgeCount())
	started := time.Now()
	err := l.runPhases(ctx)
	hooks.OnLayoutComplete(ctx, time.Since(started), err)
	return err
}

func (l *Layouter) runPhases(ctx context.Context) error {
	phases := []struct {
		name string
		fn   func() error
	}{
		{"ranking", l.rank},
		{"normalize", l.normalize},
		{"ordering", l.order},
		{"coordinates", l.assignCoordinates},
		{"denormalize", l.denormalize},
		{"routing", l.routeBackedges},
	}
	hooks := observability.Layout()
	for _, p := range phases {
		hooks.OnPhaseStart(ctx, p.name)
		phaseStart := time.Now()
		err := p.fn()
		hooks.OnPhaseComplete(ctx, p.name, time.Since(phaseStart), err)
		if err != nil {
			l.log.Error("layout phase failed", "phase", p.name, "err", err)
			return err
		}
		l.log.Debug("layout phase complete", "phase", p.name, "duration", time.Since(phaseStart))
	}

	l.removeArtificial()
	l.verifyRouted(ctx)
	l.translate()
	return nil
}

// Warnings returns the non-fatal problems collected during Run, such as
// edges left without a routed polyline.
func (l *Layouter) Warnings() []string {
	return l.warnings
}

// Backedges returns every back-edge found during preparation, canonical and
// eclipsed alike, sorted by source then destination.
func (l *Layouter) Backedges() []graph.EdgeID {
	out := make([]graph.EdgeID, 0, len(l.backs))
	for _, b := range l.backs {
		out = append(out, b.id)
	}
	return out
}

// fillPayloads replaces nil payloads (left behind by edge auto-creation)
// with zero values so the phases can dereference freely.
func (l *Layouter) fillPayloads() {
	for _, id := range l.g.NodeIDs() {
		if n, _ := l.g.Node(id); n == nil {
			l.g.AddNode(id, &Node{})
		}
	}
	for _, e := range l.g.Edges() {
		if p, _ := l.g.Edge(e.Src, e.Dst); p == nil {
			l.g.AddEdge(e.Src, e.Dst, &Edge{})
		}
	}
}

// prepareEndpoints validates that the graph has at least one source and one
// sink and, when there are several, funnels them through zero-size
// artificial nodes so the pipeline always sees a single entry and exit.
func (l *Layouter) prepareEndpoints() error {
	sources := l.g.Sources()
	sinks := l.g.Sinks()
	if len(sources) == 0 {
		return errors.New(errors.ErrCodeNoSource, "graph has no source node")
	}
	if len(sinks) == 0 {
		return errors.New(errors.ErrCodeNoSink, "graph has no sink node")
	}

	if len(sources) == 1 {
		l.start = sources[0]
	} else {
		l.start = freshID(l.g, "__start")
		l.artificialStart = true
		l.g.AddNode(l.start, &Node{})
		for _, s := range sources {
			l.g.AddEdge(l.start, s, &Edge{})
		}
	}

	if len(sinks) == 1 {
		l.end = sinks[0]
	} else {
		l.end = freshID(l.g, "__end")
		l.artificialEnd = true
		l.g.AddNode(l.end, &Node{})
		for _, s := range sinks {
			l.g.AddEdge(s, l.end, &Edge{})
		}
	}
	return nil
}

// removeArtificial deletes the artificial endpoints, and their incident
// edges, from the final graph. Ranks of the remaining nodes are left as
// assigned, so a graph with several sources keeps its sources at rank 1.
func (l *Layouter) removeArtificial() {
	if l.artificialStart {
		l.dropFromRank(l.start)
		_ = l.g.RemoveNode(l.start)
	}
	if l.artificialEnd {
		l.dropFromRank(l.end)
		_ = l.g.RemoveNode(l.end)
	}
}

// verifyRouted checks the final-layout invariant that every edge carries a
// polyline; violations are warnings, not errors, so partial output stays
// usable.
func (l *Layouter) verifyRouted(ctx context.Context) {
	hooks := observability.Layout()
	for _, e := range l.g.Edges() {
		p, _ := l.g.Edge(e.Src, e.Dst)
		if p == nil || len(p.Points) < 2 {
			w := fmt.Sprintf("edge %s->%s has no routed polyline", e.Src, e.Dst)
			l.warnings = append(l.warnings, w)
			hooks.OnWarning(ctx, w)
			l.log.Warn("unrouted edge", "src", e.Src, "dst", e.Dst)
		}
	}
}

// translate shifts the whole layout right so the minimum x coordinate is
// zero. Back-edge lanes are routed at negative x first; this keeps the
// published coordinate space non-negative.
func (l *Layouter) translate() {
	minX := 0.0
	for _, id := range l.g.NodeIDs() {
		n := l.node(id)
		if left := n.X - n.Width/2; left < minX {
			minX = left
		}
	}
	for _, e := range l.g.Edges() {
		p, _ := l.g.Edge(e.Src, e.Dst)
		for _, pt := range p.Points {
			if pt.X < minX {
				minX = pt.X
			}
		}
	}
	if minX >= 0 {
		return
	}
	for _, id := range l.g.NodeIDs() {
		l.node(id).X -= minX
	}
	for _, e := range l.g.Edges() {
		p, _ := l.g.Edge(e.Src, e.Dst)
		for i := range p.Points {
			p.Points[i].X -= minX
		}
	}
}

func (l *Layouter) node(id string) *Node {
	n, _ := l.g.Node(id)
	return n
}

func (l *Layouter) isBack(e graph.EdgeID) bool {
	_, ok := l.backSet[e]
	return ok
}

func (l *Layouter) dropFromRank(id string) {
	n := l.node(id)
	if n == nil {
		return
	}
	row := l.ranks[n.Rank]
	for i, v := range row {
		if v == id {
			l.ranks[n.Rank] = append(row[:i], row[i+1:]...)
			break
		}
	}
}

// freshID returns base if unused, otherwise base with a numeric suffix.
func freshID(g *Graph, base string) string {
	id := base
	for i := 2; g.HasNode(id); i++ {
		id = fmt.Sprintf("%s_%d", base, i)
	}
	return id
}
