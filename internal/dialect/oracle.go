package dialect

import (
	"strings"

	_ "github.com/sijms/go-ora/v2"
)

// OracleDialect reads the ALL_* dictionary views filtered by owner. Owners are stored
// upper-case unless they were created quoted.
type OracleDialect struct{}

func (d *OracleDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = UPPER(:1) ORDER BY TABLE_NAME`
}

// GetColumnsQuery maps NUMBER to DECIMAL or INTEGER by scale so the exported type names
// stay inside the compiler's mapping table.
func (d *OracleDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    col.TABLE_NAME,
    col.COLUMN_NAME,
    DECODE(col.DATA_TYPE, 'NUMBER', DECODE(NVL(col.DATA_SCALE, 0), 0, 'INTEGER', 'DECIMAL'), col.DATA_TYPE),
    CASE
        WHEN col.DATA_TYPE = 'NUMBER' AND NVL(col.DATA_SCALE, 0) > 0
            THEN 'DECIMAL(' || col.DATA_PRECISION || ',' || col.DATA_SCALE || ')'
        WHEN col.DATA_TYPE = 'NUMBER' THEN 'INTEGER'
        WHEN col.CHAR_LENGTH > 0 THEN col.DATA_TYPE || '(' || col.CHAR_LENGTH || ')'
        ELSE col.DATA_TYPE
    END,
    NULLIF(col.CHAR_LENGTH, 0),
    col.NULLABLE,
    (SELECT MAX('PRI')
       FROM ALL_CONSTRAINTS k
       JOIN ALL_CONS_COLUMNS kc ON kc.OWNER = k.OWNER AND kc.CONSTRAINT_NAME = k.CONSTRAINT_NAME
      WHERE k.OWNER = col.OWNER AND k.TABLE_NAME = col.TABLE_NAME
        AND k.CONSTRAINT_TYPE = 'P' AND kc.COLUMN_NAME = col.COLUMN_NAME),
    DECODE(col.IDENTITY_COLUMN, 'YES', 'identity', NULL),
    (SELECT MAX('UNIQUE')
       FROM ALL_CONSTRAINTS k
       JOIN ALL_CONS_COLUMNS kc ON kc.OWNER = k.OWNER AND kc.CONSTRAINT_NAME = k.CONSTRAINT_NAME
      WHERE k.OWNER = col.OWNER AND k.TABLE_NAME = col.TABLE_NAME
        AND k.CONSTRAINT_TYPE = 'U' AND kc.COLUMN_NAME = col.COLUMN_NAME),
    cm.COMMENTS
FROM ALL_TAB_COLUMNS col
LEFT JOIN ALL_COL_COMMENTS cm
    ON cm.OWNER = col.OWNER AND cm.TABLE_NAME = col.TABLE_NAME AND cm.COLUMN_NAME = col.COLUMN_NAME
WHERE col.OWNER = UPPER(:1)
ORDER BY col.TABLE_NAME, col.COLUMN_ID`
}

func (d *OracleDialect) GetForeignKeysQuery(schema string) string {
	return `
SELECT
    fk.TABLE_NAME,
    fk.CONSTRAINT_NAME,
    fc.COLUMN_NAME,
    pk.TABLE_NAME,
    pc.COLUMN_NAME
FROM ALL_CONSTRAINTS fk
JOIN ALL_CONS_COLUMNS fc ON fc.OWNER = fk.OWNER AND fc.CONSTRAINT_NAME = fk.CONSTRAINT_NAME
JOIN ALL_CONSTRAINTS pk ON pk.OWNER = fk.R_OWNER AND pk.CONSTRAINT_NAME = fk.R_CONSTRAINT_NAME
JOIN ALL_CONS_COLUMNS pc ON pc.OWNER = pk.OWNER AND pc.CONSTRAINT_NAME = pk.CONSTRAINT_NAME AND pc.POSITION = fc.POSITION
WHERE fk.CONSTRAINT_TYPE = 'R' AND fk.OWNER = UPPER(:1)
ORDER BY fk.TABLE_NAME, fk.CONSTRAINT_NAME, fc.POSITION`
}

func (d *OracleDialect) SupportsAddConstraint() bool {
	return true
}

// SupportsBracketIdentifiers is false: Oracle quotes with double quotes only.
func (d *OracleDialect) SupportsBracketIdentifiers() bool {
	return false
}

// NormalizeType maps Oracle names; DATE carries a time of day, so it becomes datetime.
func (d *OracleDialect) NormalizeType(sqlType string) string {
	s := strings.ToLower(sqlType)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	switch {
	case s == "nvarchar2", s == "nchar":
		return "nvarchar"
	case s == "varchar2", s == "char":
		return "varchar"
	case strings.HasSuffix(s, "clob"), s == "long":
		return "text"
	case s == "integer":
		return "int"
	case s == "number":
		return "decimal"
	case strings.Contains(s, "float"), s == "binary_double":
		return "float"
	case s == "date", strings.HasPrefix(s, "timestamp"):
		return "datetime"
	default:
		return s
	}
}

// GetSchemaName passes the owner through; the CLI resolves an empty one to USER.
func (d *OracleDialect) GetSchemaName(input string) string {
	return input
}
