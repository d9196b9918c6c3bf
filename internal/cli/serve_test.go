package cli

import (
	"net/http/httptest"
	"testing"

	"github.com/dcrt-lumc/exonviz/pkg/errors"
	"github.com/dcrt-lumc/exonviz/pkg/layout"
)

func TestConfigFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    func(layout.Config) bool
		wantErr bool
	}{
		{
			name:  "defaults with no parameters",
			query: "",
			want:  func(c layout.Config) bool { return c == layout.DefaultConfig() },
		},
		{
			name:  "max-width and non-coding",
			query: "max-width=800&non-coding=true",
			want:  func(c layout.Config) bool { return c.MaxWidth == 800 && c.IncludeNonCoding },
		},
		{
			name:  "height gap and scale",
			query: "height=30&gap=15&scale=0.5",
			want: func(c layout.Config) bool {
				return c.ExonHeight == 30 && c.Gap == 15 && c.ScalePerBase == 0.5
			},
		},
		{
			name:    "non-numeric width",
			query:   "max-width=wide",
			wantErr: true,
		},
		{
			name:    "bad boolean",
			query:   "non-coding=maybe",
			wantErr: true,
		},
		{
			name:    "invalid resulting config",
			query:   "gap=-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/figure/NM_000094.3?"+tt.query, nil)
			cfg, err := configFromQuery(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("configFromQuery() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error code = %q, want INVALID_CONFIG", errors.GetCode(err))
				}
				return
			}
			if !tt.want(cfg) {
				t.Errorf("configFromQuery() = %+v does not satisfy expectation", cfg)
			}
		})
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "gene symbol via MANE", input: "COL7A1", want: "NM_000094.4:c.="},
		{name: "versioned transcript", input: "NM_000094.3", want: "NM_000094.3:c.="},
		{name: "full description", input: "NM_004006.2:c.4375C>T", want: "NM_004006.2:c.4375C>T"},
		{name: "unversioned unknown name", input: "NM_000094", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeInput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"svg", "png", "pdf"} {
		if err := validateFormat(format); err != nil {
			t.Errorf("validateFormat(%q) = %v, want nil", format, err)
		}
	}
	if err := validateFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("validateFormat(gif) = %v, want INVALID_FORMAT", err)
	}
}
