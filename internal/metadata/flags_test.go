package metadata_test

import (
	"testing"

	"nl2sql/internal/metadata"
)

func TestParseNullable(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"NO", false},
		{"0", false},
		{"", true},
		{"YES", true},
		{"no", true}, // only the exact "NO" is recognised
		{" NO", true},
		{"false", true},
		{"1", true},
	}
	for _, tt := range tests {
		if got := metadata.ParseNullable(tt.raw); got != tt.want {
			t.Errorf("ParseNullable(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParsePrimary(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"yes", true},
		{"YES", true},
		{"True", true},
		{"1", true},
		{"", false},
		{"no", false},
		{"y", false},
		{"1.0", false},
	}
	for _, tt := range tests {
		if got := metadata.ParsePrimary(tt.raw); got != tt.want {
			t.Errorf("ParsePrimary(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, b := range []bool{true, false} {
		if got := metadata.ParseNullable(metadata.FormatNullable(b)); got != b {
			t.Errorf("nullable round trip of %v = %v", b, got)
		}
		if got := metadata.ParsePrimary(metadata.FormatPrimary(b)); got != b {
			t.Errorf("primary round trip of %v = %v", b, got)
		}
	}
}
