// Package transcript defines the immutable exon model that the layout
// engine consumes.
//
// A [Transcript] is an ordered 5'→3' sequence of [Exon] values. Each exon
// records its total length in bases and the sub-range of it that codes for
// protein. The model carries no genomic coordinates; positions inside an
// exon are always offsets from the exon's own start.
//
// Values in this package are constructed once, by the mutalyzer resolver
// or by tests, and never mutated afterwards.
package transcript

import (
	"fmt"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
)

// Variant is a variant mark inside an exon, drawn as a tick on the glyph.
type Variant struct {
	Offset      int    `json:"offset"`      // bases from the exon start
	Description string `json:"description"` // HGVS description, e.g. "274G>T"
	Color       string `json:"color"`       // SVG color name or hex value
}

// Exon is one spliced segment of the transcript.
//
// The coding sub-range satisfies 0 <= CodingStart <= CodingEnd <= Length.
// CodingStart == CodingEnd means the exon is entirely non-coding.
type Exon struct {
	Length      int `json:"length"`
	CodingStart int `json:"coding_start"`
	CodingEnd   int `json:"coding_end"`

	// Reading-frame phase (0..2) at the coding region boundaries.
	// EndPhase == (StartPhase + coding length) mod 3.
	StartPhase int `json:"start_phase"`
	EndPhase   int `json:"end_phase"`

	Variants []Variant `json:"variants,omitempty"`
}

// CodingLen returns the number of coding bases in the exon.
func (e Exon) CodingLen() int { return e.CodingEnd - e.CodingStart }

// NonCodingLen returns the number of non-coding bases in the exon.
func (e Exon) NonCodingLen() int { return e.Length - e.CodingLen() }

// Coding reports whether the exon has a non-empty coding sub-range.
func (e Exon) Coding() bool { return e.CodingEnd > e.CodingStart }

// Validate checks the exon's internal invariants.
func (e Exon) Validate() error {
	if e.Length <= 0 {
		return errors.New(errors.ErrCodeInvalidTranscript, "exon length must be positive, got %d", e.Length)
	}
	if e.CodingStart < 0 || e.CodingStart > e.CodingEnd || e.CodingEnd > e.Length {
		return errors.New(errors.ErrCodeInvalidTranscript,
			"coding range [%d, %d) outside exon of length %d", e.CodingStart, e.CodingEnd, e.Length)
	}
	return nil
}

// Transcript is an ordered, non-empty sequence of exons.
type Transcript struct {
	ID      string `json:"id"`
	Reverse bool   `json:"reverse"` // transcript is on the antisense strand
	Exons   []Exon `json:"exons"`
}

// New builds a Transcript after validating every exon.
// The exon slice is not copied; callers hand over ownership.
func New(id string, exons []Exon) (Transcript, error) {
	if len(exons) == 0 {
		return Transcript{}, errors.New(errors.ErrCodeEmptyTranscript, "transcript %s has no exons", id)
	}
	for i, e := range exons {
		if err := e.Validate(); err != nil {
			return Transcript{}, fmt.Errorf("exon %d: %w", i+1, err)
		}
	}
	return Transcript{ID: id, Exons: exons}, nil
}

// CodingLen returns the total number of coding bases across all exons.
func (t Transcript) CodingLen() int {
	var n int
	for _, e := range t.Exons {
		n += e.CodingLen()
	}
	return n
}

// Len returns the total transcript length in bases.
func (t Transcript) Len() int {
	var n int
	for _, e := range t.Exons {
		n += e.Length
	}
	return n
}
