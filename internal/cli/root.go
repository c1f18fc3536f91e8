package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	details string // full build information block shown by --version
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with buildinfo values injected via ldflags.
func SetVersion(v, d string) {
	version = v
	details = d
}

// Execute runs the flowgraph CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree. The
// logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "flowgraph",
		Short:        "flowgraph lays out control-flow graphs",
		Long:         `flowgraph computes layered layouts for directed control-flow graphs with cycles: ranks, orderings, coordinates, and routed edge polylines, including dedicated lanes for loop back-edges.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	if details != "" {
		root.SetVersionTemplate("flowgraph\n" + details + "\n")
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newLayoutCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newDotCmd())
	root.AddCommand(newAnalyzeCmd())

	return root.ExecuteContext(ctx)
}
