package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcrt-lumc/exonviz/pkg/mutalyzer"
)

func newFetchCmd() *cobra.Command {
	var refresh bool
	cacheOpts := cacheFlags{}

	cmd := &cobra.Command{
		Use:   "fetch <transcript>",
		Short: "Resolve a transcript and print the exon model as JSON",
		Long: `Fetch resolves a transcript through Mutalyzer and prints the exon
model (lengths, coding ranges, phases, variants) as JSON, without
rendering anything. Useful for inspecting what draw would work from.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), args[0], refresh, cacheOpts)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and fetch fresh data")
	cacheOpts.register(cmd)
	return cmd
}

func runFetch(ctx context.Context, input string, refresh bool, cacheOpts cacheFlags) error {
	logger := loggerFromContext(ctx)

	description, err := normalizeInput(input)
	if err != nil {
		return err
	}

	backend, err := cacheOpts.open()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	client := mutalyzer.NewClient(backend, cacheTTL)

	prog := newProgress(logger)
	tr, err := client.Resolve(ctx, description, refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s: %d exons", description, len(tr.Exons)))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tr)
}
