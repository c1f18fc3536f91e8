package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/cycles"
	"github.com/matzehuels/flowgraph/pkg/dominance"
	"github.com/matzehuels/flowgraph/pkg/graphio"
)

// newAnalyzeCmd creates the analyze command for structural reports.
func newAnalyzeCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "analyze [graph.json]",
		Short: "Report sources, sinks, cycles, and back-edges",
		Long: `Report the control-flow structure of a graph without laying it out:
sources and sinks, non-trivial strongly connected components, elementary
cycles, back-edge classification (canonical vs. eclipsed), and the
immediate dominator of every node.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args[0], start)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "traversal start node (default: the single source)")

	return cmd
}

func runAnalyze(out io.Writer, input, start string) error {
	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	lg, err := graphio.ToLayoutGraph(g)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "nodes:   %d\n", lg.NodeCount())
	fmt.Fprintf(out, "edges:   %d\n", lg.EdgeCount())
	fmt.Fprintf(out, "sources: %s\n", strings.Join(lg.Sources(), ", "))
	fmt.Fprintf(out, "sinks:   %s\n", strings.Join(lg.Sinks(), ", "))

	nontrivial := 0
	for scc := range cycles.StronglyConnected(lg) {
		if len(scc) > 1 {
			nontrivial++
			fmt.Fprintf(out, "scc:     {%s}\n", strings.Join(scc, ", "))
		}
	}
	if nontrivial == 0 {
		fmt.Fprintln(out, "scc:     none with more than one node")
	}

	for _, c := range cycles.SimpleCycles(lg) {
		fmt.Fprintf(out, "cycle:   %s\n", strings.Join(c.Nodes, " -> "))
	}

	bedges, err := cycles.Find(lg, start, true)
	if err != nil {
		return err
	}
	for _, e := range bedges.Canonical {
		fmt.Fprintf(out, "backedge: %s -> %s\n", e.Src, e.Dst)
	}
	for _, e := range bedges.Eclipsed {
		fmt.Fprintf(out, "backedge: %s -> %s (eclipsed)\n", e.Src, e.Dst)
	}

	root := start
	if root == "" {
		if sources := lg.Sources(); len(sources) == 1 {
			root = sources[0]
		}
	}
	if root != "" {
		tree := dominance.NewTree(lg, root)
		for _, id := range lg.NodeIDs() {
			idom, ok := tree.IDom[id]
			if !ok || id == root {
				continue
			}
			fmt.Fprintf(out, "idom:    %s <- %s\n", id, idom)
		}
	}
	return nil
}
