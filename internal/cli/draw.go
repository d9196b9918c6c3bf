package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/layout"
	"github.com/dcrt-lumc/exonviz/pkg/mutalyzer"
	"github.com/dcrt-lumc/exonviz/pkg/render"
)

// drawOptions collects the flags of the draw command.
type drawOptions struct {
	maxWidth  float64
	height    float64
	gap       float64
	scale     float64
	nonCoding bool
	output    string
	format    string
	styleFile string
	refresh   bool
	cache     cacheFlags
}

func (o drawOptions) layoutConfig() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.MaxWidth = o.maxWidth
	cfg.ExonHeight = o.height
	cfg.Gap = o.gap
	cfg.ScalePerBase = o.scale
	cfg.IncludeNonCoding = o.nonCoding
	return cfg
}

func newDrawCmd() *cobra.Command {
	defaults := layout.DefaultConfig()
	opts := drawOptions{}

	cmd := &cobra.Command{
		Use:   "draw <transcript>",
		Short: "Resolve a transcript and render its exon figure",
		Long: `Draw resolves a transcript identifier, gene symbol, or HGVS variant
description through Mutalyzer and renders the exon structure as SVG.

The figure is written to stdout unless --output is given. PNG and PDF
output (--format) requires rsvg-convert from librsvg.`,
		Example: `  exonviz draw NM_000094.3 > figure.svg
  exonviz draw COL7A1 --max-width 1000 --non-coding -o figure.svg
  exonviz draw "NM_004006.2:c.4375C>T" --format png -o figure.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.maxWidth, "max-width", 0, "maximum row width before wrapping (0 = single row)")
	cmd.Flags().Float64Var(&opts.height, "height", defaults.ExonHeight, "exon glyph height")
	cmd.Flags().Float64Var(&opts.gap, "gap", defaults.Gap, "horizontal gap between exons")
	cmd.Flags().Float64Var(&opts.scale, "scale", defaults.ScalePerBase, "drawing units per base")
	cmd.Flags().BoolVar(&opts.nonCoding, "non-coding", false, "draw non-coding regions")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, png, pdf")
	cmd.Flags().StringVar(&opts.styleFile, "style-file", "", "TOML file overriding figure colors and shapes")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and fetch fresh data")
	opts.cache.register(cmd)

	return cmd
}

func runDraw(ctx context.Context, input string, opts drawOptions) error {
	logger := loggerFromContext(ctx)

	// Validate everything local before any network work.
	cfg := opts.layoutConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateFormat(opts.format); err != nil {
		return err
	}
	style := render.DefaultStyle()
	if opts.styleFile != "" {
		var err error
		if style, err = render.LoadStyle(opts.styleFile); err != nil {
			return err
		}
	}

	description, err := normalizeInput(input)
	if err != nil {
		return err
	}
	logger.Debug("resolved input", "input", input, "description", description)

	backend, err := opts.cache.open()
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	client := mutalyzer.NewClient(backend, cacheTTL)

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Resolving %s...", description))
	spinner.Start()

	tr, err := client.Resolve(ctx, description, opts.refresh)
	if err != nil {
		spinner.StopWithError("Resolution failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Resolved %s: %d exons", description, len(tr.Exons)))

	writeSummary(os.Stderr, tr)

	l, err := layout.Flow(tr, cfg)
	if err != nil {
		return err
	}
	logger.Debug("layout computed",
		"rows", len(l.Rows), "glyphs", l.GlyphCount(), "connectors", len(l.Connectors),
		"width", l.Width, "height", l.Height)

	svg := render.SVG(l, render.WithStyle(style), render.WithTitle(description))

	data, err := convertFormat(svg, opts.format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess(os.Stderr, "Wrote %s", opts.output)
	return nil
}

func validateFormat(format string) error {
	switch format {
	case "svg", "png", "pdf":
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (expected svg, png, or pdf)", format)
	}
}

func convertFormat(svg []byte, format string) ([]byte, error) {
	switch format {
	case "png":
		return render.ToPNG(svg, 2.0)
	case "pdf":
		return render.ToPDF(svg)
	default:
		return svg, nil
	}
}
