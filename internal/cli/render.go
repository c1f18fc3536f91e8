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

// newRenderCmd creates the render command for drawing computed layouts.
func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Draw a computed layout as SVG",
		Long: `Draw a computed layout as SVG.

The render command takes a layout.json file (produced by 'flowgraph
layout') and draws it faithfully: nodes at their computed coordinates,
edges along their routed polylines, back-edges dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")

	return cmd
}

func runRender(ctx context.Context, input, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	l, err := graphio.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	svg := render.RenderSVG(l)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".svg"
	}
	if err := os.WriteFile(outputPath, svg, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	prog.done("Rendered " + outputPath)
	return nil
}
