// Package compiler turns CSV schema metadata into a SQL Server DDL script: one
// CREATE TABLE per table in input order, then one ALTER TABLE ... ADD CONSTRAINT
// per relation in input order.
package compiler

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"nl2sql/internal/metadata"
	"nl2sql/internal/schema"
)

// StatementSeparator joins the statements of a script.
const StatementSeparator = "\n\n"

// Options tune compilation. The zero value reproduces the reference output.
type Options struct {
	// Strict rejects relations whose endpoints are unknown and duplicate constraint names.
	Strict bool
}

// UnmappedTypeWarning records a field whose logical type fell back to FallbackType.
type UnmappedTypeWarning struct {
	Table    string
	Field    string
	RawType  string
	Fallback string
}

func (w UnmappedTypeWarning) String() string {
	return fmt.Sprintf("%s.%s: type %q is not mapped, using %s", w.Table, w.Field, w.RawType, w.Fallback)
}

// Result is a compiled schema.
type Result struct {
	Tables      []*schema.Table      // input table order
	ForeignKeys []*schema.ForeignKey // input relation order
	Warnings    []UnmappedTypeWarning
}

// Compile builds tables and foreign keys from a metadata set. It only fails in strict
// mode, with a *ValidationError.
func Compile(set *metadata.Set, opts Options) (*Result, error) {
	res := &Result{}

	for _, td := range set.Tables {
		t := &schema.Table{Name: td.Name, Dependencies: []string{}}
		for _, fd := range set.Fields {
			if fd.TableName != td.Name {
				continue
			}
			sqlType, matched := MapType(fd.DataType)
			if !matched {
				res.Warnings = append(res.Warnings, UnmappedTypeWarning{
					Table:    td.Name,
					Field:    fd.FieldName,
					RawType:  fd.DataType,
					Fallback: sqlType,
				})
			}
			t.Columns = append(t.Columns, &schema.Column{
				Name:       fd.FieldName,
				DataType:   fd.DataType,
				SQLType:    sqlType,
				Length:     typeLength(sqlType),
				IsNullable: fd.Nullable(),
				IsPK:       fd.Primary(),
				IsAutoInc:  fd.Identity(),
				IsUnique:   fd.Unique(),
				Comment:    fd.Description,
				Meaning:    schema.AnalyzeMeaning(fd.FieldName, fd.Description),
			})
		}
		res.Tables = append(res.Tables, t)
	}

	byName := make(map[string]*schema.Table, len(res.Tables))
	for _, t := range res.Tables {
		if _, dup := byName[t.Name]; !dup {
			byName[t.Name] = t
		}
	}

	for _, rel := range set.Relations {
		fk := &schema.ForeignKey{
			Name:      ConstraintName(rel),
			Table:     rel.ChildTable,
			Column:    rel.ChildColumn,
			RefTable:  rel.ParentTable,
			RefColumn: rel.ParentColumn,
		}
		res.ForeignKeys = append(res.ForeignKeys, fk)

		child, ok := byName[rel.ChildTable]
		if !ok {
			continue
		}
		child.ForeignKeys = append(child.ForeignKeys, fk)
		if _, known := byName[rel.ParentTable]; known && rel.ParentTable != child.Name &&
			!slices.Contains(child.Dependencies, rel.ParentTable) {
			child.Dependencies = append(child.Dependencies, rel.ParentTable)
		}
	}

	if opts.Strict {
		if err := Validate(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Statements returns every CREATE TABLE followed by every foreign key statement.
func (r *Result) Statements() []string {
	stmts := make([]string, 0, len(r.Tables)+len(r.ForeignKeys))
	for _, t := range r.Tables {
		stmts = append(stmts, BuildCreateTable(t))
	}
	for _, fk := range r.ForeignKeys {
		stmts = append(stmts, BuildForeignKey(fk))
	}
	return stmts
}

// Script returns the assembled SQL script.
func (r *Result) Script() string {
	stmts := r.Statements()
	return Assemble(stmts[:len(r.Tables)], stmts[len(r.Tables):])
}

// Assemble joins table statements and then foreign key statements with a blank line.
func Assemble(creates, foreignKeys []string) string {
	all := make([]string, 0, len(creates)+len(foreignKeys))
	all = append(all, creates...)
	all = append(all, foreignKeys...)
	return strings.Join(all, StatementSeparator)
}

// BuildCreateTable renders one CREATE TABLE statement, terminated by ");\n".
// Columns without SQLType are mapped from DataType. Identity columns get IDENTITY(1,1).
func BuildCreateTable(t *schema.Table) string {
	lines := make([]string, 0, len(t.Columns)+1)
	var pk []string
	for _, c := range t.Columns {
		sqlType := c.SQLType
		if sqlType == "" {
			sqlType, _ = MapType(c.DataType)
		}
		null := "NULL"
		if !c.IsNullable {
			null = "NOT NULL"
		}
		if c.IsAutoInc {
			sqlType += " IDENTITY(1,1)"
		}
		lines = append(lines, fmt.Sprintf("    %s %s %s", quote(c.Name), sqlType, null))
		if c.IsPK {
			pk = append(pk, quote(c.Name))
		}
	}
	if len(pk) > 0 {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
			quote(PrimaryKeyName(t.Name)), strings.Join(pk, ", ")))
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(quote(t.Name))
	b.WriteString(" (\n")
	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n);\n")
	return b.String()
}

// BuildForeignKey renders one ALTER TABLE ... ADD CONSTRAINT ... FOREIGN KEY statement.
func BuildForeignKey(fk *schema.ForeignKey) string {
	name := fk.Name
	if name == "" {
		name = ConstraintName(metadata.RelationDescriptor{
			ChildTable:  fk.Table,
			ChildColumn: fk.Column,
			ParentTable: fk.RefTable,
		})
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s);",
		quote(fk.Table), quote(name), quote(fk.Column), quote(fk.RefTable), quote(fk.RefColumn))
}

// PrimaryKeyName is the primary key constraint name of a table.
func PrimaryKeyName(table string) string {
	return "PK_" + table
}

// ConstraintName derives FK_<child>_<child column>_<parent>. Distinct relations can
// derive the same name; only strict mode detects that.
func ConstraintName(rel metadata.RelationDescriptor) string {
	return "FK_" + rel.ChildTable + "_" + rel.ChildColumn + "_" + rel.ParentTable
}

// quote wraps an identifier in brackets. Names are emitted verbatim, as the metadata
// gives them.
func quote(ident string) string {
	return "[" + ident + "]"
}

var lengthPattern = regexp.MustCompile(`^\w+\((\d+)\)$`)

// typeLength extracts n from TYPE(n); DECIMAL(p,s) and unsized types yield 0.
func typeLength(sqlType string) int {
	m := lengthPattern.FindStringSubmatch(sqlType)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
