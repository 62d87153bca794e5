package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nl2sql/internal/schema"
)

// FromTables converts an introspected schema into a metadata set that Load reads back.
// Data types use the dialect-normalized name when there is one, with the declared size
// kept, e.g. int4 -> int and NVARCHAR(40) -> nvarchar(40).
func FromTables(tables []*schema.Table) *Set {
	set := &Set{}
	for _, t := range tables {
		set.Tables = append(set.Tables, TableDescriptor{Name: t.Name})
		for _, c := range t.Columns {
			set.Fields = append(set.Fields, FieldDescriptor{
				TableName:   t.Name,
				FieldName:   c.Name,
				DataType:    declaredType(c),
				IsNull:      FormatNullable(c.IsNullable),
				IsPrimary:   FormatPrimary(c.IsPK),
				Description: c.Comment,
				IsIdentity:  FormatPrimary(c.IsAutoInc),
				IsUnique:    FormatPrimary(c.IsUnique),
			})
		}
		for _, fk := range t.ForeignKeys {
			set.Relations = append(set.Relations, RelationDescriptor{
				ChildTable:   t.Name,
				ChildColumn:  fk.Column,
				ParentTable:  fk.RefTable,
				ParentColumn: fk.RefColumn,
			})
		}
	}
	return set
}

func declaredType(c *schema.Column) string {
	base, size := c.DataType, ""
	if i := strings.IndexByte(c.DataType, '('); i >= 0 {
		base, size = c.DataType[:i], c.DataType[i:]
	} else if c.Length > 0 {
		size = "(" + strconv.Itoa(c.Length) + ")"
	}
	if c.SQLType != "" {
		base = c.SQLType
	}
	return base + size
}

// Write stores the set as the three files named by paths, creating parent directories.
func Write(paths Paths, set *Set) error {
	if err := writeFile(paths.Tables, func(w io.Writer) error { return WriteTables(w, set.Tables) }); err != nil {
		return err
	}
	if err := writeFile(paths.Fields, func(w io.Writer) error { return WriteFields(w, set.Fields) }); err != nil {
		return err
	}
	return writeFile(paths.Relations, func(w io.Writer) error { return WriteRelations(w, set.Relations) })
}

// PathsIn returns the default file names inside dir.
func PathsIn(dir string) Paths {
	return Paths{
		Tables:    filepath.Join(dir, DefaultPaths.Tables),
		Fields:    filepath.Join(dir, DefaultPaths.Fields),
		Relations: filepath.Join(dir, DefaultPaths.Relations),
	}
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteTables writes the table list with its header.
func WriteTables(w io.Writer, tables []TableDescriptor) error {
	rows := [][]string{{ColTableName}}
	for _, t := range tables {
		rows = append(rows, []string{t.Name})
	}
	return writeRecords(w, rows)
}

// WriteFields writes the field description list with its header.
func WriteFields(w io.Writer, fields []FieldDescriptor) error {
	rows := [][]string{{ColTableName, ColFieldName, ColDataType, ColIsNull, ColIsPrimary, ColDescription, ColIsIdentity, ColIsUnique}}
	for _, f := range fields {
		rows = append(rows, []string{f.TableName, f.FieldName, f.DataType, f.IsNull, f.IsPrimary, f.Description, f.IsIdentity, f.IsUnique})
	}
	return writeRecords(w, rows)
}

// WriteRelations writes the relation key list with its header.
func WriteRelations(w io.Writer, relations []RelationDescriptor) error {
	rows := [][]string{{ColChildTable, ColChildColumn, ColParentTable, ColParentColumn}}
	for _, r := range relations {
		rows = append(rows, []string{r.ChildTable, r.ChildColumn, r.ParentTable, r.ParentColumn})
	}
	return writeRecords(w, rows)
}

func writeRecords(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
