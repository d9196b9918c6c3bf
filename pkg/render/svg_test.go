package render

import (
	"strings"
	"testing"

	"github.com/dcrt-lumc/exonviz/pkg/layout"
	"github.com/dcrt-lumc/exonviz/pkg/transcript"
)

func mustFlow(t *testing.T, tr transcript.Transcript, cfg layout.Config) layout.Layout {
	t.Helper()
	l, err := layout.Flow(tr, cfg)
	if err != nil {
		t.Fatalf("layout.Flow: %v", err)
	}
	return l
}

func mustTranscript(t *testing.T, exons ...transcript.Exon) transcript.Transcript {
	t.Helper()
	tr, err := transcript.New("NM_000094.3", exons)
	if err != nil {
		t.Fatalf("transcript.New: %v", err)
	}
	return tr
}

func TestSVGIsSelfContained(t *testing.T) {
	tr := mustTranscript(t, transcript.Exon{Length: 100, CodingStart: 0, CodingEnd: 100})
	svg := string(SVG(mustFlow(t, tr, layout.DefaultConfig())))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with a namespaced <svg> element")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("output should end with </svg>")
	}
	if strings.Contains(svg, "href=") {
		t.Error("output must not reference external resources")
	}
}

func TestSVGCanvasIsBoundingBox(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.MaxWidth = 100

	// Middle exon overflows MaxWidth; the canvas must follow it.
	tr := mustTranscript(t,
		transcript.Exon{Length: 50, CodingStart: 0, CodingEnd: 50},
		transcript.Exon{Length: 400, CodingStart: 0, CodingEnd: 400},
	)
	s := DefaultStyle()
	svg := string(SVG(mustFlow(t, tr, cfg), WithStyle(s)))

	// 400 content + 2*20 margin.
	if !strings.Contains(svg, `viewBox="0 0 440.0`) {
		t.Errorf("viewBox should span the oversized row, got: %s", firstLine(svg))
	}
}

func TestSVGOneShapePerGlyphAndConnector(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.MaxWidth = 250

	tr := mustTranscript(t,
		transcript.Exon{Length: 100, CodingStart: 0, CodingEnd: 100},
		transcript.Exon{Length: 100, CodingStart: 0, CodingEnd: 100},
		transcript.Exon{Length: 100, CodingStart: 0, CodingEnd: 100},
	)
	svg := string(SVG(mustFlow(t, tr, cfg)))

	if got := strings.Count(svg, `class="exon coding"`); got != 3 {
		t.Errorf("coding rects = %d, want 3", got)
	}
	if got := strings.Count(svg, `class="intron"`); got != 1 {
		t.Errorf("same-row connectors = %d, want 1", got)
	}
	if got := strings.Count(svg, `class="wrap"`); got != 1 {
		t.Errorf("row-wrap connectors = %d, want 1", got)
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("row-wrap connector should be dashed to stand apart")
	}
}

func TestSVGNonCodingStyling(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.IncludeNonCoding = true

	tr := mustTranscript(t, transcript.Exon{Length: 50, CodingStart: 10, CodingEnd: 40})
	svg := string(SVG(mustFlow(t, tr, cfg)))

	if got := strings.Count(svg, `class="exon noncoding"`); got != 1 {
		t.Errorf("non-coding rects = %d, want 1", got)
	}
	if !strings.Contains(svg, `fill="url(#noncoding-hatch)"`) {
		t.Error("non-coding glyph should use the hatch pattern")
	}
	// Coding glyphs keep rounded corners; non-coding ones don't.
	if !strings.Contains(svg, `rx="3.0"`) {
		t.Error("coding glyph should have rounded corners")
	}
}

func TestSVGNoNonCodingWhenExcluded(t *testing.T) {
	tr := mustTranscript(t, transcript.Exon{Length: 50, CodingStart: 10, CodingEnd: 40})
	svg := string(SVG(mustFlow(t, tr, layout.DefaultConfig())))

	if strings.Contains(svg, "noncoding\"") {
		t.Error("no non-coding shapes expected with non-coding excluded")
	}
}

func TestSVGPhaseNotches(t *testing.T) {
	tr := mustTranscript(t,
		transcript.Exon{Length: 100, CodingStart: 0, CodingEnd: 100, StartPhase: 0, EndPhase: 1},
		transcript.Exon{Length: 50, CodingStart: 0, CodingEnd: 50, StartPhase: 1, EndPhase: 0},
	)
	svg := string(SVG(mustFlow(t, tr, layout.DefaultConfig())))

	// End-phase indentation on exon 1, start-phase protrusion on exon 2.
	if got := strings.Count(svg, `class="phase"`); got != 2 {
		t.Errorf("phase notches = %d, want 2", got)
	}
}

func TestSVGVariantTicks(t *testing.T) {
	tr := mustTranscript(t, transcript.Exon{
		Length: 100, CodingStart: 0, CodingEnd: 100,
		Variants: []transcript.Variant{{Offset: 25, Description: "274G>T", Color: "red"}},
	})
	svg := string(SVG(mustFlow(t, tr, layout.DefaultConfig())))

	if got := strings.Count(svg, `class="variant"`); got != 1 {
		t.Errorf("variant ticks = %d, want 1", got)
	}
	if !strings.Contains(svg, "<title>274G&gt;T</title>") {
		t.Error("variant description should be embedded, XML-escaped")
	}
}

func TestSVGTitle(t *testing.T) {
	tr := mustTranscript(t, transcript.Exon{Length: 10, CodingStart: 0, CodingEnd: 10})
	svg := string(SVG(mustFlow(t, tr, layout.DefaultConfig()), WithTitle("NM_000094.3:c.=")))

	if !strings.Contains(svg, "<title>NM_000094.3:c.=</title>") {
		t.Error("figure title missing")
	}
}

func TestSVGDeterminism(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.MaxWidth = 120
	cfg.IncludeNonCoding = true

	tr := mustTranscript(t,
		transcript.Exon{Length: 80, CodingStart: 20, CodingEnd: 80},
		transcript.Exon{Length: 90, CodingStart: 0, CodingEnd: 45},
	)
	a := SVG(mustFlow(t, tr, cfg))
	b := SVG(mustFlow(t, tr, cfg))
	if string(a) != string(b) {
		t.Error("rendering should be byte-identical for identical layouts")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
