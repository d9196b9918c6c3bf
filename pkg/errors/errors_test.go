package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidConfig, "gap must be positive, got %g", -1.0),
			want: "INVALID_CONFIG: gap must be positive, got -1",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeResolution, stderrors.New("connection refused"), "resolve NM_000094.3"),
			want: "RESOLUTION_FAILED: resolve NM_000094.3: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeEmptyTranscript, "transcript has no exons")

	if !Is(err, ErrCodeEmptyTranscript) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInvalidConfig) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeEmptyTranscript) {
		t.Error("Is() = true for plain error")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeNotFound, "transcript NM_999999.9")
	outer := fmt.Errorf("fetch exons: %w", inner)

	if !Is(outer, ErrCodeNotFound) {
		t.Error("Is() should find code through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeNotFound)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("dial tcp: timeout")
	err := Wrap(ErrCodeNetwork, cause, "mutalyzer request")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Error() = %q, should contain cause text", err.Error())
	}
}

func TestGetCodePlainError(t *testing.T) {
	if code := GetCode(stderrors.New("plain")); code != "" {
		t.Errorf("GetCode() = %q, want empty", code)
	}
}
