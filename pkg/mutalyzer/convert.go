package mutalyzer

import (
	"strconv"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/transcript"
)

// Range is a 0-based half-open interval on the reference sequence.
type Range struct {
	Start, End int
}

// Len returns the number of bases covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Mutalyzer reports positions as 1-based inclusive pairs of strings, in
// transcript order: on the antisense strand the pairs run high to low.
// The converters below normalize everything to 0-based half-open ranges
// in ascending genomic order.

// IsReverse reports whether the exon positions describe a transcript on
// the antisense strand.
func IsReverse(positions [][2]string) (bool, error) {
	if len(positions) == 0 {
		return false, errors.New(errors.ErrCodeResolution, "no exon positions in payload")
	}
	start, end, err := parsePair(positions[0])
	if err != nil {
		return false, err
	}
	return start > end, nil
}

// ConvertExonPositions converts Mutalyzer exon pairs to sorted 0-based
// half-open ranges. Antisense transcripts are flipped into ascending order.
func ConvertExonPositions(positions [][2]string) ([]Range, error) {
	reverse, err := IsReverse(positions)
	if err != nil {
		return nil, err
	}

	ranges := make([]Range, 0, len(positions))
	if !reverse {
		for _, p := range positions {
			start, end, err := parsePair(p)
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, Range{Start: start - 1, End: end})
		}
		return ranges, nil
	}

	for i := len(positions) - 1; i >= 0; i-- {
		start, end, err := parsePair(positions[i])
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, Range{Start: end - 1, End: start})
	}
	return ranges, nil
}

// ConvertCodingPositions converts the CDS pair to a 0-based half-open
// range, regardless of strand orientation.
func ConvertCodingPositions(positions [][2]string) (Range, error) {
	if len(positions) == 0 {
		// Non-coding transcript: empty CDS.
		return Range{}, nil
	}
	start, end, err := parsePair(positions[0])
	if err != nil {
		return Range{}, err
	}
	if start > end {
		start, end = end, start
	}
	return Range{Start: start - 1, End: end}, nil
}

func parsePair(p [2]string) (int, int, error) {
	start, err := strconv.Atoi(p[0])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeResolution, err, "bad position %q", p[0])
	}
	end, err := strconv.Atoi(p[1])
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeResolution, err, "bad position %q", p[1])
	}
	return start, end, nil
}

// Coding is the coding sub-range of one exon, with offsets relative to
// the exon start, plus the reading-frame phases at its boundaries.
type Coding struct {
	Start, End           int
	StartPhase, EndPhase int
}

// MakeCoding intersects an exon with the CDS. Both ranges are genomic;
// the result is exon-relative. An exon outside the CDS yields the zero
// Coding. startPhase is the frame phase carried in from the previous
// coding exon.
func MakeCoding(exon, cds Range, startPhase int) Coding {
	start := max(exon.Start, cds.Start)
	end := min(exon.End, cds.End)
	if start >= end {
		return Coding{}
	}
	c := Coding{
		Start:      start - exon.Start,
		End:        end - exon.Start,
		StartPhase: startPhase,
	}
	c.EndPhase = (startPhase + (c.End - c.Start)) % 3
	return c
}

// View is one entry of the Mutalyzer view_variants payload.
type View struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Start       int    `json:"start"`
}

// ParseViewVariants filters a view payload down to the actual variants,
// dropping the "outside" filler entries.
func ParseViewVariants(views []View) []View {
	var variants []View
	for _, v := range views {
		if v.Type == "variant" {
			variants = append(variants, v)
		}
	}
	return variants
}

// Inside reports whether a variant's position falls within the exon.
func Inside(exon Range, v View) bool {
	return v.Start >= exon.Start && v.Start < exon.End
}

// ExonVariants maps the variants inside an exon to exon-relative marks.
func ExonVariants(exon Range, views []View) []transcript.Variant {
	var out []transcript.Variant
	for _, v := range views {
		if !Inside(exon, v) {
			continue
		}
		out = append(out, transcript.Variant{
			Offset:      v.Start - exon.Start,
			Description: v.Description,
			Color:       "red",
		})
	}
	return out
}

// BuildTranscript assembles the immutable transcript model from resolved
// exon ranges, the CDS, and variant views. The reading-frame phase is
// threaded through consecutive coding exons.
func BuildTranscript(id string, exons []Range, cds Range, views []View, reverse bool) (transcript.Transcript, error) {
	variants := ParseViewVariants(views)

	phase := 0
	out := make([]transcript.Exon, 0, len(exons))
	for _, ex := range exons {
		coding := MakeCoding(ex, cds, phase)
		e := transcript.Exon{
			Length:      ex.Len(),
			CodingStart: coding.Start,
			CodingEnd:   coding.End,
			StartPhase:  coding.StartPhase,
			EndPhase:    coding.EndPhase,
			Variants:    ExonVariants(ex, variants),
		}
		if e.Coding() {
			phase = coding.EndPhase
		}
		out = append(out, e)
	}

	t, err := transcript.New(id, out)
	if err != nil {
		return transcript.Transcript{}, err
	}
	t.Reverse = reverse
	return t, nil
}
