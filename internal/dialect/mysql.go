package dialect

import (
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

// MysqlDialect reads information_schema of the connected database.
type MysqlDialect struct{}

func (d *MysqlDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MysqlDialect) GetColumnsQuery(schema string) string {
	// COLUMN_TYPE already carries the length, e.g. varchar(50).
	return `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, CHARACTER_MAXIMUM_LENGTH, IS_NULLABLE, COLUMN_KEY, EXTRA, IF(COLUMN_KEY='UNI', 'UNIQUE', NULL) AS IS_UNIQUE, COLUMN_COMMENT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? ORDER BY TABLE_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT TABLE_NAME, CONSTRAINT_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME FROM information_schema.KEY_COLUMN_USAGE WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL ORDER BY TABLE_NAME, CONSTRAINT_NAME, ORDINAL_POSITION`
}

func (d *MysqlDialect) SupportsAddConstraint() bool {
	return true
}

// SupportsBracketIdentifiers is false: MySQL quotes with backticks.
func (d *MysqlDialect) SupportsBracketIdentifiers() bool {
	return false
}

func (d *MysqlDialect) NormalizeType(sqlType string) string {
	switch t := strings.ToLower(sqlType); t {
	case "mediumint", "integer":
		return "int"
	case "double", "real":
		return "float"
	case "numeric":
		return "decimal"
	case "char":
		return "varchar"
	case "tinytext", "mediumtext", "longtext":
		return "text"
	case "timestamp":
		return "datetime"
	default:
		return t
	}
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}
