package schema

type Table struct {
	Name         string
	Columns      []*Column
	ForeignKeys  []*ForeignKey
	Dependencies []string // parent tables, self references excluded
}

type Column struct {
	Name       string
	DataType   string // declared (logical) type as found in the source
	SQLType    string // concrete SQL Server type, set by the compiler
	Length     int
	IsNullable bool
	IsPK       bool
	IsAutoInc  bool
	IsUnique   bool
	Comment    string
	Meaning    string // e.g. "phone", "email", see AnalyzeMeaning
}

type ForeignKey struct {
	Name      string
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// PrimaryKey returns the primary key column names in column order.
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.Columns {
		if c.IsPK {
			pk = append(pk, c.Name)
		}
	}
	return pk
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ForeignKeyFor returns the foreign key declared on column, or nil.
func (t *Table) ForeignKeyFor(column string) *ForeignKey {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk
		}
	}
	return nil
}
