// Package render serializes an exon layout into a self-contained,
// scalable SVG. Rendering is pure: it performs no I/O and always
// succeeds on a well-formed layout. Writing the result to a file or
// converting it to PNG/PDF is the caller's concern.
package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/dcrt-lumc/exonviz/pkg/layout"
)

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	style Style
	title string
}

// WithStyle overrides the default figure style.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithTitle embeds a figure title (usually the transcript identifier)
// as an SVG <title> element, shown as a tooltip by most viewers.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// SVG renders a layout as a self-contained vector image. The canvas is
// the bounding box of the content plus the style margin, never the
// configured maximum row width.
func SVG(l layout.Layout, opts ...Option) []byte {
	r := renderer{style: DefaultStyle()}
	for _, opt := range opts {
		opt(&r)
	}
	s := r.style

	width := l.Width + 2*s.Margin
	height := l.Height + 2*s.Margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}

	renderDefs(&buf, s)

	if s.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", width, height, s.Background)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", s.Margin, s.Margin)

	h := glyphHeight(l)
	for _, c := range l.Connectors {
		renderConnector(&buf, s, c, h)
	}
	for _, row := range l.Rows {
		for _, g := range row.Glyphs {
			renderGlyph(&buf, s, g)
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// renderDefs writes the hatch pattern used for non-coding glyphs.
func renderDefs(buf *bytes.Buffer, s Style) {
	fmt.Fprintf(buf, "  <defs>\n"+
		`    <pattern id="noncoding-hatch" width="6" height="6" patternTransform="rotate(45)" patternUnits="userSpaceOnUse">`+"\n"+
		`      <rect width="6" height="6" fill="%s"/>`+"\n"+
		`      <line x1="0" y1="0" x2="0" y2="6" stroke="%s" stroke-width="2"/>`+"\n"+
		"    </pattern>\n  </defs>\n",
		s.NonCodingFill, s.NonCodingStroke)
}

func renderGlyph(buf *bytes.Buffer, s Style, g layout.Glyph) {
	switch g.Kind {
	case layout.KindCoding:
		fmt.Fprintf(buf, `    <rect class="exon %s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			g.Kind, g.X, g.Y, g.W, g.H, s.CornerRadius, s.CodingFill, s.CodingStroke, s.StrokeWidth)
		renderPhases(buf, s, g)
	case layout.KindNonCoding:
		fmt.Fprintf(buf, `    <rect class="exon %s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#noncoding-hatch)" stroke="%s" stroke-width="%.1f"/>`+"\n",
			g.Kind, g.X, g.Y, g.W, g.H, s.NonCodingStroke, s.StrokeWidth)
	}
	renderVariants(buf, s, g)
}

// renderPhases draws the reading-frame notches on a coding glyph: an
// indentation on the right edge when the exon ends mid-codon, and a
// matching protrusion on the left edge when it starts mid-codon.
func renderPhases(buf *bytes.Buffer, s Style, g layout.Glyph) {
	notch := g.H / 2
	if g.StartPhase != 0 {
		fmt.Fprintf(buf, `    <polygon class="phase" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			g.X, g.Y, g.X-notch, g.Y+g.H/2, g.X, g.Y+g.H,
			s.CodingFill, s.CodingStroke, s.StrokeWidth)
	}
	if g.EndPhase != 0 {
		right := g.X + g.W
		fmt.Fprintf(buf, `    <polygon class="phase" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
			right, g.Y, right-notch, g.Y+g.H/2, right, g.Y+g.H,
			orDefault(s.Background, "white"))
	}
}

func renderVariants(buf *bytes.Buffer, s Style, g layout.Glyph) {
	for _, v := range g.Variants {
		x := g.X + min(v.X, g.W)
		color := v.Color
		if color == "" {
			color = s.VariantColor
		}
		fmt.Fprintf(buf, `    <line class="variant" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f">`,
			x, g.Y, x, g.Y+g.H, color, s.VariantWidth)
		if v.Description != "" {
			fmt.Fprintf(buf, "<title>%s</title>", escapeXML(v.Description))
		}
		buf.WriteString("</line>\n")
	}
}

// renderConnector draws the intron link between two exons. Same-row
// connectors are carets peaking above the glyphs; row-wrap connectors
// are dashed stepped paths routed through the inter-row band.
func renderConnector(buf *bytes.Buffer, s Style, c layout.Connector, glyphH float64) {
	switch c.Kind {
	case layout.SameRow:
		midX := (c.X1 + c.X2) / 2
		peakY := c.Y1 - glyphH*0.75
		fmt.Fprintf(buf, `    <path class="%s" d="M %.1f %.1f L %.1f %.1f L %.1f %.1f" fill="none" stroke="%s" stroke-width="%.1f"/>`+"\n",
			c.Kind, c.X1, c.Y1, midX, peakY, c.X2, c.Y2, s.ConnectorStroke, s.ConnectorWidth)
	case layout.RowWrap:
		ext := glyphH / 2
		midY := (c.Y1 + c.Y2) / 2
		fmt.Fprintf(buf, `    <path class="%s" d="M %.1f %.1f H %.1f V %.1f H %.1f V %.1f H %.1f" fill="none" stroke="%s" stroke-width="%.1f" stroke-dasharray="%s"/>`+"\n",
			c.Kind, c.X1, c.Y1, c.X1+ext, midY, c.X2-ext, c.Y2, c.X2,
			s.ConnectorStroke, s.ConnectorWidth, s.WrapDash)
	}
}

// glyphHeight returns the common glyph height of the layout, used to
// size connector carets. Layouts are uniform-height by construction.
func glyphHeight(l layout.Layout) float64 {
	for _, r := range l.Rows {
		if len(r.Glyphs) > 0 {
			return r.Glyphs[0].H
		}
	}
	return 0
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
