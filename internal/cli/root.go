package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dcrt-lumc/exonviz/pkg/buildinfo"
)

// Execute runs the exonviz CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands (draw,
// fetch, serve, cache), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:   "exonviz",
		Short: "exonviz draws the exon structure of a transcript",
		Long: `exonviz renders a schematic figure of a gene transcript's exon
structure as a scalable vector image. Transcripts are resolved through
the Mutalyzer API from a transcript identifier, a gene symbol (via the
MANE table), or a full HGVS variant description.`,
		Version:      buildinfo.Version,
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

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDrawCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
