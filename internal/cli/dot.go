package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgraph/pkg/graphio"
	"github.com/matzehuels/flowgraph/pkg/render"
)

// newDotCmd creates the dot command for Graphviz exports.
func newDotCmd() *cobra.Command {
	var (
		output string
		svg    bool
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.json]",
		Short: "Export a graph as Graphviz DOT",
		Long: `Export a graph as Graphviz DOT for a quick structural preview.

This bypasses the layout pipeline entirely and lets Graphviz compute its
own drawing; use it to sanity-check graph structure. With --svg the DOT is
rendered to SVG via the embedded Graphviz engine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDot(cmd.Context(), args[0], output, svg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.dot or <input>.svg)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render the DOT to SVG")

	return cmd
}

func runDot(ctx context.Context, input, output string, svg bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	g, err := graphio.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	dot := render.ToDOT(g)
	data := []byte(dot)
	ext := ".dot"
	if svg {
		data, err = render.RenderDOTSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render DOT: %w", err)
		}
		ext = ".svg"
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ext
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	prog.done("Exported " + outputPath)
	return nil
}
