package compiler

import "strings"

// TypeMapping maps a lowercase logical type prefix to a SQL Server type.
type TypeMapping struct {
	Prefix  string
	SQLType string
}

// FallbackType is used for logical types that match no prefix.
const FallbackType = "NVARCHAR(255)"

// TypeMappings is scanned in order and the first matching prefix wins. The order is
// part of the output contract: "date" precedes "datetime", so every datetime* type
// maps to DATE.
var TypeMappings = []TypeMapping{
	{"int", "INT"},
	{"bigint", "BIGINT"},
	{"smallint", "SMALLINT"},
	{"tinyint", "TINYINT"},
	{"float", "FLOAT"},
	{"decimal", "DECIMAL(18,4)"},
	{"varchar", "VARCHAR(255)"},
	{"nvarchar", "NVARCHAR(255)"},
	{"text", "TEXT"},
	{"date", "DATE"},
	{"datetime", "DATETIME"},
	{"bit", "BIT"},
}

// MapType returns the SQL type for a logical type string. matched is false when the
// fallback was used. Every input yields a type.
func MapType(raw string) (sqlType string, matched bool) {
	t := strings.ToLower(raw)
	for _, m := range TypeMappings {
		if strings.HasPrefix(t, m.Prefix) {
			return m.SQLType, true
		}
	}
	return FallbackType, false
}
