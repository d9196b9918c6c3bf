package mutalyzer

import (
	"regexp"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
)

var (
	bareTranscriptRE = regexp.MustCompile(`^\w+\.\d+$`)
	bareNameRE       = regexp.MustCompile(`^\w+$`)
)

// CheckInput normalizes user input into a full HGVS description.
// A versioned transcript without a variant ("NM_000094.3") becomes the
// no-change description "NM_000094.3:c.=". A bare name without a version
// is rejected: there is no way to guess which version was meant.
func CheckInput(input string) (string, error) {
	if bareTranscriptRE.MatchString(input) {
		return input + ":c.=", nil
	}
	if bareNameRE.MatchString(input) {
		return "", errors.New(errors.ErrCodeInvalidTranscript,
			"please specify the version of the transcript you are interested in: %s", input)
	}
	return input, nil
}
