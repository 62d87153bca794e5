package dialect

import "strings"

// DefaultGetSchemaName is the default schema name resolution (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// DetectDriver guesses the database/sql driver name from a DSN when none is configured.
func DetectDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case strings.HasPrefix(lower, "sqlserver://"), strings.Contains(lower, "server="):
		return "sqlserver"
	case strings.HasPrefix(lower, "oracle://"):
		return "oracle"
	case strings.HasPrefix(lower, "postgres"), strings.Contains(lower, "sslmode"):
		return "postgres"
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"), lower == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}
