package dialect

// Dialect abstracts database-specific introspection and DDL capabilities.
type Dialect interface {
	// Metadata queries. Each takes the schema name as its single bind parameter.
	GetTablesQuery(schema string) string
	GetColumnsQuery(schema string) string
	GetForeignKeysQuery(schema string) string

	// SupportsAddConstraint reports whether ALTER TABLE ... ADD CONSTRAINT ... FOREIGN KEY
	// can be executed.
	SupportsAddConstraint() bool

	// SupportsBracketIdentifiers reports whether [Name] quoting parses, which the
	// compiled scripts use for every identifier.
	SupportsBracketIdentifiers() bool

	// NormalizeType maps an engine type name onto the metadata vocabulary the compiler
	// maps (int, bigint, smallint, tinyint, float, decimal, varchar, nvarchar, text,
	// date, datetime, bit). Names outside it are returned lowercased.
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
