package render

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
)

// Style is the enumerated table of visual constants for one figure.
// Everything here is configuration data, not behavior: a style can be
// loaded from a TOML file and swapped without touching the renderer.
type Style struct {
	// Background fills the whole canvas. Empty means transparent.
	Background string `toml:"background"`

	// Coding glyphs: filled rounded rectangles.
	CodingFill   string  `toml:"coding_fill"`
	CodingStroke string  `toml:"coding_stroke"`
	CornerRadius float64 `toml:"corner_radius"`

	// Non-coding glyphs: hatched rectangles, square corners.
	NonCodingFill   string `toml:"noncoding_fill"`
	NonCodingStroke string `toml:"noncoding_stroke"`

	// Connectors between exons.
	ConnectorStroke string  `toml:"connector_stroke"`
	ConnectorWidth  float64 `toml:"connector_width"`

	// WrapDash is the stroke-dasharray applied to row-wrap connectors so
	// they read differently from same-row intron carets.
	WrapDash string `toml:"wrap_dash"`

	// VariantColor is the fallback tick color for variants that carry none.
	VariantColor string  `toml:"variant_color"`
	VariantWidth float64 `toml:"variant_width"`

	StrokeWidth float64 `toml:"stroke_width"`

	// Margin is the padding around the figure content.
	Margin float64 `toml:"margin"`
}

// DefaultStyle returns the built-in figure style.
func DefaultStyle() Style {
	return Style{
		Background:      "white",
		CodingFill:      "#4C72B0",
		CodingStroke:    "#2A4A7A",
		CornerRadius:    3,
		NonCodingFill:   "#C8D4E8",
		NonCodingStroke: "#8A9BB8",
		ConnectorStroke: "#555555",
		ConnectorWidth:  1.5,
		WrapDash:        "6 3",
		VariantColor:    "red",
		VariantWidth:    1.5,
		StrokeWidth:     1,
		Margin:          20,
	}
}

// LoadStyle reads a TOML style file. Keys that are absent keep their
// default values; unknown keys are rejected so typos surface instead of
// silently styling nothing.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "read style file %s", path)
	}

	s := DefaultStyle()
	meta, err := toml.Decode(string(data), &s)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse style file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style key %q in %s", undecoded[0].String(), path)
	}

	if err := s.validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

func (s Style) validate() error {
	if s.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "margin must not be negative, got %g", s.Margin)
	}
	if s.ConnectorWidth <= 0 || s.StrokeWidth <= 0 || s.VariantWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "stroke widths must be positive")
	}
	if s.CornerRadius < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "corner radius must not be negative, got %g", s.CornerRadius)
	}
	return nil
}
