package dialect

import (
	"strings"

	_ "github.com/lib/pq"
)

// PostgresDialect reads information_schema; UDT_NAME is used as the declared type
// because DATA_TYPE reports "character varying" and friends.
type PostgresDialect struct{}

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) GetColumnsQuery(schema string) string {
	return `SELECT 
    c.table_name, 
    c.column_name, 
    c.data_type, 
    c.udt_name, 
    c.character_maximum_length, 
    c.is_nullable, 
    (SELECT 'PRI' FROM information_schema.table_constraints tc 
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name 
     WHERE tc.constraint_type = 'PRIMARY KEY' 
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS column_key,
    c.column_default, 
    (SELECT 'UNIQUE' FROM information_schema.table_constraints tc 
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name 
     WHERE tc.constraint_type = 'UNIQUE' 
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1) AS is_unique,
    col_description((quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass, c.ordinal_position) AS comment
FROM information_schema.columns c
WHERE c.table_schema = $1 
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name, ccu.table_name AS referenced_table_name, ccu.column_name AS referenced_column_name FROM information_schema.key_column_usage kcu JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY' ORDER BY kcu.table_name, kcu.constraint_name`
}

func (d *PostgresDialect) SupportsAddConstraint() bool {
	return true
}

// SupportsBracketIdentifiers is false: PostgreSQL quotes with double quotes only.
func (d *PostgresDialect) SupportsBracketIdentifiers() bool {
	return false
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	switch t := strings.ToLower(sqlType); t {
	case "int4", "integer", "serial":
		return "int"
	case "int8", "bigserial":
		return "bigint"
	case "int2", "smallserial":
		return "smallint"
	case "float4", "float8", "real", "double precision":
		return "float"
	case "numeric":
		return "decimal"
	case "bpchar", "character", "char", "character varying":
		return "varchar"
	case "bool", "boolean":
		return "bit"
	case "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone":
		return "datetime"
	default:
		return t
	}
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
