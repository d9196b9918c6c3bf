// Package layout converts a transcript's exon structure into a
// row-wrapped geometric arrangement of glyphs and connectors.
//
// The algorithm is greedy row-packing, a direct analog of text line
// wrapping: exons are placed left to right in transcript order, and a
// new row starts whenever the next exon would overflow the configured
// maximum width. [Flow] is a pure function over immutable inputs; given
// the same transcript and config it always produces the same layout.
package layout

import (
	"github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/transcript"
)

// RegionKind distinguishes coding from non-coding glyphs.
type RegionKind int

const (
	KindCoding RegionKind = iota
	KindNonCoding
)

// String returns the kind as a lowercase label, used for SVG class names.
func (k RegionKind) String() string {
	if k == KindNonCoding {
		return "noncoding"
	}
	return "coding"
}

// VariantMark is a variant tick positioned within a glyph.
// X is in drawing units from the glyph's left edge.
type VariantMark struct {
	X           float64
	Description string
	Color       string
}

// Glyph is the positioned rectangle for one exon region.
type Glyph struct {
	X, Y, W, H float64
	Kind       RegionKind

	// Exon is the index of the source exon in the transcript.
	Exon int

	// Reading-frame phases at the glyph edges; meaningful only for
	// coding glyphs, zero otherwise.
	StartPhase, EndPhase int

	Variants []VariantMark
}

// Right returns the x coordinate of the glyph's right edge.
func (g Glyph) Right() float64 { return g.X + g.W }

// Bottom returns the y coordinate of the glyph's bottom edge.
func (g Glyph) Bottom() float64 { return g.Y + g.H }

// CenterY returns the vertical center of the glyph.
func (g Glyph) CenterY() float64 { return g.Y + g.H/2 }

// ConnectorKind distinguishes intron links within a row from links that
// cross a row boundary.
type ConnectorKind int

const (
	SameRow ConnectorKind = iota
	RowWrap
)

// String returns the kind as a lowercase label, used for SVG class names.
func (k ConnectorKind) String() string {
	if k == RowWrap {
		return "wrap"
	}
	return "intron"
}

// Connector links the right edge of one exon's last glyph to the left
// edge of the next drawn exon's first glyph. Endpoints are at glyph
// vertical centers.
type Connector struct {
	FromExon, ToExon int
	X1, Y1, X2, Y2   float64
	Kind             ConnectorKind
}

// Row is an ordered sequence of glyphs sharing one vertical band.
type Row struct {
	Glyphs []Glyph
}

// Width returns the occupied width of the row: the right edge of its
// rightmost glyph. Rows always start at x = 0.
func (r Row) Width() float64 {
	if len(r.Glyphs) == 0 {
		return 0
	}
	return r.Glyphs[len(r.Glyphs)-1].Right()
}

// Layout is the complete geometric arrangement of a transcript.
// Width and Height are the bounding box of the content, which may exceed
// the configured maximum width when a single exon is wider than it.
type Layout struct {
	Rows       []Row
	Connectors []Connector
	Width      float64
	Height     float64
}

// GlyphCount returns the total number of glyphs across all rows.
func (l Layout) GlyphCount() int {
	var n int
	for _, r := range l.Rows {
		n += len(r.Glyphs)
	}
	return n
}

// placement is one drawn exon: its glyphs with exon-relative x positions
// and the total width they occupy.
type placement struct {
	exon   int
	glyphs []Glyph
	width  float64
}

// Flow lays out a transcript according to cfg.
//
// It fails with an INVALID_CONFIG error for non-positive gap, height or
// scale, and with EMPTY_TRANSCRIPT when the transcript has no exons.
// Exons whose drawn width is zero (fully non-coding with non-coding
// regions excluded) are skipped; their neighboring connectors merge into
// one. An exon wider than MaxWidth occupies a row of its own and is
// allowed to overflow it.
func Flow(t transcript.Transcript, cfg Config) (Layout, error) {
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}
	if len(t.Exons) == 0 {
		return Layout{}, errors.New(errors.ErrCodeEmptyTranscript, "transcript %s has no exons", t.ID)
	}

	var placements []placement
	for i, e := range t.Exons {
		glyphs := exonGlyphs(i, e, cfg)
		if len(glyphs) == 0 {
			continue
		}
		last := glyphs[len(glyphs)-1]
		placements = append(placements, placement{exon: i, glyphs: glyphs, width: last.X + last.W})
	}
	if len(placements) == 0 {
		// Every exon was dropped (all non-coding, non-coding excluded).
		return Layout{}, nil
	}

	rowSpacing := cfg.RowSpacing()
	rowHeight := cfg.ExonHeight + rowSpacing

	type edge struct {
		left, right, centerY float64
		row                  int
	}
	edges := make([]edge, len(placements))

	var rows []Row
	cur := Row{}
	cursor := 0.0
	rowIdx := 0

	for pi, p := range placements {
		if cursor > 0 && cfg.MaxWidth > 0 && cursor+cfg.Gap+p.width > cfg.MaxWidth {
			rows = append(rows, cur)
			cur = Row{}
			rowIdx++
			cursor = 0
		}

		x := cursor
		if cursor > 0 {
			x += cfg.Gap
		}
		y := float64(rowIdx) * rowHeight

		for _, g := range p.glyphs {
			g.X += x
			g.Y = y
			cur.Glyphs = append(cur.Glyphs, g)
		}
		edges[pi] = edge{left: x, right: x + p.width, centerY: y + cfg.ExonHeight/2, row: rowIdx}
		cursor = x + p.width
	}
	rows = append(rows, cur)

	connectors := make([]Connector, 0, len(placements)-1)
	for pi := 1; pi < len(placements); pi++ {
		from, to := edges[pi-1], edges[pi]
		kind := SameRow
		if to.row != from.row {
			kind = RowWrap
		}
		connectors = append(connectors, Connector{
			FromExon: placements[pi-1].exon,
			ToExon:   placements[pi].exon,
			X1:       from.right,
			Y1:       from.centerY,
			X2:       to.left,
			Y2:       to.centerY,
			Kind:     kind,
		})
	}

	var width float64
	for _, r := range rows {
		width = max(width, r.Width())
	}
	height := float64(len(rows))*cfg.ExonHeight + float64(len(rows)-1)*rowSpacing

	return Layout{Rows: rows, Connectors: connectors, Width: width, Height: height}, nil
}

// exonGlyphs builds the glyph(s) for one exon with x positions relative
// to the exon's own origin. An exon yields at most two glyphs: its coding
// region and, when non-coding regions are included, a single glyph for
// the combined non-coding length, placed before the coding region when
// the exon starts non-coding and after it otherwise.
func exonGlyphs(index int, e transcript.Exon, cfg Config) []Glyph {
	codingW := float64(e.CodingLen()) * cfg.ScalePerBase

	if !cfg.IncludeNonCoding {
		if codingW == 0 {
			return nil
		}
		g := Glyph{
			W:          codingW,
			H:          cfg.ExonHeight,
			Kind:       KindCoding,
			Exon:       index,
			StartPhase: e.StartPhase,
			EndPhase:   e.EndPhase,
			Variants:   codingVariants(e, cfg.ScalePerBase),
		}
		return []Glyph{g}
	}

	nonCodingW := float64(e.NonCodingLen()) * cfg.ScalePerBase

	coding := Glyph{
		W:          codingW,
		H:          cfg.ExonHeight,
		Kind:       KindCoding,
		Exon:       index,
		StartPhase: e.StartPhase,
		EndPhase:   e.EndPhase,
		Variants:   codingVariants(e, cfg.ScalePerBase),
	}
	nonCoding := Glyph{
		W:        nonCodingW,
		H:        cfg.ExonHeight,
		Kind:     KindNonCoding,
		Exon:     index,
		Variants: nonCodingVariants(e, cfg.ScalePerBase),
	}

	switch {
	case codingW == 0:
		return []Glyph{nonCoding}
	case nonCodingW == 0:
		return []Glyph{coding}
	case e.CodingStart > 0:
		coding.X = nonCodingW + cfg.Gap
		return []Glyph{nonCoding, coding}
	default:
		nonCoding.X = codingW + cfg.Gap
		return []Glyph{coding, nonCoding}
	}
}

// codingVariants maps the exon's variants that fall inside the coding
// region onto the coding glyph.
func codingVariants(e transcript.Exon, scale float64) []VariantMark {
	var marks []VariantMark
	for _, v := range e.Variants {
		if v.Offset < e.CodingStart || v.Offset >= e.CodingEnd {
			continue
		}
		marks = append(marks, VariantMark{
			X:           float64(v.Offset-e.CodingStart) * scale,
			Description: v.Description,
			Color:       v.Color,
		})
	}
	return marks
}

// nonCodingVariants maps variants outside the coding region onto the
// combined non-coding glyph. Positions are measured in non-coding bases
// passed so far, so a variant after the coding region lands past the
// leading untranslated stretch.
func nonCodingVariants(e transcript.Exon, scale float64) []VariantMark {
	var marks []VariantMark
	for _, v := range e.Variants {
		var offset int
		switch {
		case v.Offset < e.CodingStart:
			offset = v.Offset
		case v.Offset >= e.CodingEnd:
			offset = e.CodingStart + (v.Offset - e.CodingEnd)
		default:
			continue
		}
		marks = append(marks, VariantMark{
			X:           float64(offset) * scale,
			Description: v.Description,
			Color:       v.Color,
		})
	}
	return marks
}
