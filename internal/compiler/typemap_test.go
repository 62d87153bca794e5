package compiler_test

import (
	"strings"
	"testing"

	"nl2sql/internal/compiler"
)

func TestMapType(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		matched bool
	}{
		{"int", "INT", true},
		{"INT", "INT", true},
		{"integer", "INT", true},
		{"bigint", "BIGINT", true},
		{"SmallInt", "SMALLINT", true},
		{"tinyint", "TINYINT", true},
		{"float(53)", "FLOAT", true},
		{"decimal(10,2)", "DECIMAL(18,4)", true},
		{"varchar(50)", "VARCHAR(255)", true},
		{"NVARCHAR(MAX)", "NVARCHAR(255)", true},
		{"text", "TEXT", true},
		{"date", "DATE", true},
		{"datetime", "DATE", true}, // "date" is listed first and wins
		{"datetime2", "DATE", true},
		{"bit", "BIT", true},
		{"money", compiler.FallbackType, false},
		{"uniqueidentifier", compiler.FallbackType, false},
		{"", compiler.FallbackType, false},
		{" int", compiler.FallbackType, false},
	}
	for _, tt := range tests {
		got, matched := compiler.MapType(tt.raw)
		if got != tt.want || matched != tt.matched {
			t.Errorf("MapType(%q) = (%q, %v), want (%q, %v)", tt.raw, got, matched, tt.want, tt.matched)
		}
	}
}

// Every mapped prefix, in any case and with any suffix, yields its own type unless an
// earlier prefix also matches.
func TestMapType_PrefixProperty(t *testing.T) {
	suffixes := []string{"", "(10)", "_custom", " unsigned"}
	for i, m := range compiler.TypeMappings {
		want := m.SQLType
		for _, earlier := range compiler.TypeMappings[:i] {
			if strings.HasPrefix(m.Prefix, earlier.Prefix) {
				want = earlier.SQLType
				break
			}
		}
		for _, sfx := range suffixes {
			for _, raw := range []string{m.Prefix + sfx, strings.ToUpper(m.Prefix) + sfx} {
				got, matched := compiler.MapType(raw)
				if !matched || got != want {
					t.Errorf("MapType(%q) = (%q, %v), want %q", raw, got, matched, want)
				}
			}
		}
	}
}
