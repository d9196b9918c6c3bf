package layout

import "github.com/dcrt-lumc/exonviz/pkg/errors"

// Default drawing parameters. The horizontal scale of one unit per base
// keeps exon widths directly proportional to sequence length; together
// with the 20-unit exon height this gives readable figures for typical
// transcripts without any configuration.
const (
	DefaultExonHeight   = 20.0
	DefaultGap          = 10.0
	DefaultScalePerBase = 1.0
)

// Config holds the parameters for one layout pass. It is treated as
// immutable by [Flow].
type Config struct {
	// MaxWidth is the maximum row width before wrapping.
	// Zero means unbounded: all exons are placed on a single row.
	MaxWidth float64

	// ExonHeight is the height of an exon glyph.
	ExonHeight float64

	// Gap is the horizontal space between adjacent exon glyphs on a row.
	Gap float64

	// IncludeNonCoding draws non-coding sub-regions at full size.
	// When false, only coding sub-regions contribute width and fully
	// non-coding exons disappear from the figure.
	IncludeNonCoding bool

	// ScalePerBase converts base counts to horizontal drawing units.
	ScalePerBase float64
}

// DefaultConfig returns a Config with the documented defaults: unbounded
// width, 20-unit exon height, gap of half the exon height, one unit per
// base, non-coding regions omitted.
func DefaultConfig() Config {
	return Config{
		MaxWidth:     0,
		ExonHeight:   DefaultExonHeight,
		Gap:          DefaultGap,
		ScalePerBase: DefaultScalePerBase,
	}
}

// RowSpacing is the vertical distance between stacked rows. It is a fixed
// multiple of Gap so wrapping reads differently from intra-row spacing.
func (c Config) RowSpacing() float64 { return 2 * c.Gap }

// Validate rejects configurations that cannot produce a meaningful
// drawing. Non-positive gap or exon height is an error, not something to
// clamp; callers start from [DefaultConfig] and override fields.
func (c Config) Validate() error {
	if c.ExonHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "exon height must be positive, got %g", c.ExonHeight)
	}
	if c.Gap <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gap must be positive, got %g", c.Gap)
	}
	if c.ScalePerBase <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %g", c.ScalePerBase)
	}
	if c.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max width must not be negative, got %g", c.MaxWidth)
	}
	return nil
}
