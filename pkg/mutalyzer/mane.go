package mutalyzer

import (
	_ "embed"
	"strings"
	"sync"
)

// MANE (Matched Annotation from NCBI and EMBL-EBI) pairs each gene with
// one representative transcript. The embedded table lets users pass a
// gene symbol instead of a transcript identifier.
//
//go:embed mane.txt
var maneData string

var maneOnce = sync.OnceValue(func() map[string]string {
	table := make(map[string]string)
	for _, line := range strings.Split(maneData, "\n") {
		gene, tr, ok := strings.Cut(strings.TrimSpace(line), "\t")
		if !ok {
			continue
		}
		table[gene] = tr
	}
	return table
})

// ManeTranscript looks up the MANE Select transcript for a gene symbol.
func ManeTranscript(gene string) (string, bool) {
	tr, ok := maneOnce()[gene]
	return tr, ok
}

// Substitute replaces a gene symbol with its MANE transcript, leaving
// anything that is not a known gene untouched.
func Substitute(input string) string {
	if tr, ok := ManeTranscript(input); ok {
		return tr
	}
	return input
}
