package metadata

import "strings"

// notNullValues is the closed set of isnull cells that make a column NOT NULL.
// Matching is exact: "no" or " NO" stay nullable.
var notNullValues = map[string]bool{
	"NO": true,
	"0":  true,
}

// primaryValues is matched after lowercasing the cell.
var primaryValues = map[string]bool{
	"yes":  true,
	"true": true,
	"1":    true,
}

// ParseNullable interprets an isnull cell. Anything outside {"NO", "0"},
// including an empty or absent cell, is nullable.
func ParseNullable(raw string) bool {
	return !notNullValues[raw]
}

// ParsePrimary interprets an isprimary cell. Only yes/true/1 (any case) are primary;
// everything else, including an empty or absent cell, is not.
func ParsePrimary(raw string) bool {
	return primaryValues[strings.ToLower(raw)]
}

// FormatNullable is the inverse of ParseNullable used when exporting.
func FormatNullable(nullable bool) string {
	if nullable {
		return "YES"
	}
	return "NO"
}

// FormatPrimary is the inverse of ParsePrimary used when exporting.
func FormatPrimary(primary bool) string {
	if primary {
		return "yes"
	}
	return ""
}
