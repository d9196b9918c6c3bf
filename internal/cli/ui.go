package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dcrt-lumc/exonviz/pkg/transcript"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary values
	colorGreen = lipgloss.Color("35")  // Green - success
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

// printSuccess prints a success message to w.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message to w.
func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

// writeSummary prints a styled per-exon table of the resolved transcript,
// mirroring the model the figure is drawn from.
func writeSummary(w io.Writer, t transcript.Transcript) {
	strand := "forward"
	if t.Reverse {
		strand = "reverse"
	}
	fmt.Fprintln(w, StyleTitle.Render(t.ID)+StyleDim.Render(fmt.Sprintf(" (%s strand)", strand)))

	for i, e := range t.Exons {
		coding := "non-coding"
		if e.Coding() {
			coding = fmt.Sprintf("coding %d..%d", e.CodingStart, e.CodingEnd)
		}
		line := fmt.Sprintf("  exon %s  %s bp  %s",
			StyleNumber.Render(fmt.Sprintf("%2d", i+1)),
			StyleValue.Render(fmt.Sprintf("%5d", e.Length)),
			StyleDim.Render(coding))
		if n := len(e.Variants); n > 0 {
			descs := make([]string, n)
			for j, v := range e.Variants {
				descs[j] = v.Description
			}
			line += "  " + StyleValue.Render(strings.Join(descs, ", "))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  %s\n", StyleDim.Render(fmt.Sprintf("%d exons, %d bp, %d bp coding",
		len(t.Exons), t.Len(), t.CodingLen())))
}
