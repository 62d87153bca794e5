package dialect

import (
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

// MSSQLDialect targets SQL Server through the sys.* catalog views.
// go-mssqldb binds @p1, @p2, ...
type MSSQLDialect struct{}

func (d *MSSQLDialect) GetTablesQuery(schema string) string {
	return `
SELECT t.name
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
WHERE s.name = @p1 AND t.is_ms_shipped = 0
ORDER BY t.name`
}

// GetColumnsQuery returns one row per column. The declared type carries precision and
// scale for decimal/numeric and the character length for the sized string types, the
// way a metadata CSV would write it. MS_Description becomes the comment.
func (d *MSSQLDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    t.name,
    c.name,
    ty.name,
    CASE
        WHEN ty.name IN ('decimal', 'numeric')
            THEN ty.name + '(' + CAST(c.precision AS VARCHAR(10)) + ',' + CAST(c.scale AS VARCHAR(10)) + ')'
        WHEN ty.name IN ('varchar', 'char', 'varbinary', 'binary') AND c.max_length > 0
            THEN ty.name + '(' + CAST(c.max_length AS VARCHAR(10)) + ')'
        WHEN ty.name IN ('nvarchar', 'nchar') AND c.max_length > 0
            THEN ty.name + '(' + CAST(c.max_length / 2 AS VARCHAR(10)) + ')'
        ELSE ty.name
    END,
    CASE
        WHEN c.max_length = -1 THEN NULL
        WHEN ty.name IN ('nvarchar', 'nchar') THEN c.max_length / 2
        WHEN ty.name IN ('varchar', 'char', 'varbinary', 'binary') THEN c.max_length
        ELSE NULL
    END,
    CASE WHEN c.is_nullable = 1 THEN 'YES' ELSE 'NO' END,
    CASE WHEN pk.column_id IS NOT NULL THEN 'PRI' ELSE '' END,
    CASE WHEN c.is_identity = 1 THEN 'identity' ELSE '' END,
    CASE WHEN uq.column_id IS NOT NULL THEN 'UNIQUE' ELSE '' END,
    CAST(ep.value AS NVARCHAR(MAX))
FROM sys.tables t
JOIN sys.schemas s ON s.schema_id = t.schema_id
JOIN sys.columns c ON c.object_id = t.object_id
JOIN sys.types ty ON ty.user_type_id = c.user_type_id
OUTER APPLY (
    SELECT TOP 1 ic.column_id
    FROM sys.indexes i
    JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
    WHERE i.object_id = t.object_id AND i.is_primary_key = 1 AND ic.column_id = c.column_id
) pk
OUTER APPLY (
    SELECT TOP 1 ic.column_id
    FROM sys.indexes i
    JOIN sys.index_columns ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
    WHERE i.object_id = t.object_id AND i.is_unique = 1 AND i.is_primary_key = 0 AND ic.column_id = c.column_id
) uq
LEFT JOIN sys.extended_properties ep
    ON ep.class = 1 AND ep.major_id = t.object_id AND ep.minor_id = c.column_id AND ep.name = 'MS_Description'
WHERE s.name = @p1 AND t.is_ms_shipped = 0
ORDER BY t.name, c.column_id`
}

func (d *MSSQLDialect) GetForeignKeysQuery(schema string) string {
	return `
SELECT
    pt.name,
    fk.name,
    pc.name,
    rt.name,
    rc.name
FROM sys.foreign_keys fk
JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.tables pt ON pt.object_id = fkc.parent_object_id
JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
JOIN sys.tables rt ON rt.object_id = fkc.referenced_object_id
JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
JOIN sys.schemas s ON s.schema_id = pt.schema_id
WHERE s.name = @p1
ORDER BY pt.name, fk.name, fkc.constraint_column_id`
}

// SupportsAddConstraint is true: the compiled scripts are written in T-SQL.
func (d *MSSQLDialect) SupportsAddConstraint() bool {
	return true
}

func (d *MSSQLDialect) SupportsBracketIdentifiers() bool {
	return true
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	switch t := strings.ToLower(sqlType); t {
	case "nvarchar", "nchar":
		return "nvarchar"
	case "varchar", "char":
		return "varchar"
	case "text", "ntext", "xml":
		return "text"
	case "decimal", "numeric", "money", "smallmoney":
		return "decimal"
	case "float", "real":
		return "float"
	case "datetime2", "smalldatetime", "datetimeoffset":
		return "datetime"
	default:
		return t
	}
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
