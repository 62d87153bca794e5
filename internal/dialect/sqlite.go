package dialect

import (
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteDialect introspects through the pragma table-valued functions. SQLite has a
// single schema per file, so the bind parameter only feeds a dummy predicate.
// A single INTEGER primary key is the rowid alias and is reported as identity.
type SQLiteDialect struct{}

func (d *SQLiteDialect) GetTablesQuery(schema string) string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND ? IS NOT NULL ORDER BY name`
}

func (d *SQLiteDialect) GetColumnsQuery(schema string) string {
	return `SELECT
    m.name,
    p.name,
    p.type,
    p.type,
    NULL,
    CASE WHEN p."notnull" = 1 THEN 'NO' ELSE 'YES' END,
    CASE WHEN p.pk > 0 THEN 'PRI' ELSE '' END,
    CASE
        WHEN p.pk = 1 AND upper(p.type) = 'INTEGER'
            AND (SELECT count(*) FROM pragma_table_info(m.name) k WHERE k.pk > 0) = 1
        THEN 'identity' ELSE ''
    END,
    CASE
        WHEN EXISTS (
            SELECT 1
            FROM pragma_index_list(m.name) il
            JOIN pragma_index_info(il.name) ii
            WHERE il."unique" = 1 AND il.origin = 'u' AND ii.name = p.name
                AND (SELECT count(*) FROM pragma_index_info(il.name)) = 1
        )
        THEN 'UNIQUE' ELSE ''
    END,
    NULL
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, p.cid`
}

func (d *SQLiteDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT
    m.name,
    'fk_' || m.name || '_' || f.id,
    f."from",
    f."table",
    f."to"
FROM sqlite_master m
JOIN pragma_foreign_key_list(m.name) f
WHERE m.type = 'table' AND ? IS NOT NULL
ORDER BY m.name, f.id, f.seq`
}

// SupportsAddConstraint is false: SQLite only declares foreign keys inside CREATE TABLE.
func (d *SQLiteDialect) SupportsAddConstraint() bool {
	return false
}

// SupportsBracketIdentifiers is true: SQLite accepts [Name] for compatibility.
func (d *SQLiteDialect) SupportsBracketIdentifiers() bool {
	return true
}

// NormalizeType strips the size and maps the common affinity spellings.
func (d *SQLiteDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	switch t = strings.TrimSpace(t); t {
	case "integer":
		return "int"
	case "real", "double", "double precision":
		return "float"
	case "numeric":
		return "decimal"
	case "boolean":
		return "bit"
	case "clob":
		return "text"
	case "character":
		return "varchar"
	default:
		return t
	}
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
