package metadata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Separator is the field separator of every metadata file.
const Separator = ';'

const utf8BOM = "\ufeff"

// ErrMissingColumn is wrapped by LoadError when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// LoadError reports a metadata source that could not be read or understood.
// Loading never returns a partial Set alongside it.
type LoadError struct {
	Source string // "tables", "fields" or "relations"
	Path   string // empty when loading from a reader
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s (%s): %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads all three metadata files.
func Load(paths Paths) (*Set, error) {
	set := &Set{}
	var err error

	if set.Tables, err = loadFile(paths.Tables, "tables", LoadTables); err != nil {
		return nil, err
	}
	if set.Fields, err = loadFile(paths.Fields, "fields", LoadFields); err != nil {
		return nil, err
	}
	if set.Relations, err = loadFile(paths.Relations, "relations", LoadRelations); err != nil {
		return nil, err
	}
	return set, nil
}

func loadFile[T any](path, source string, load func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: source, Path: path, Err: err}
	}
	defer f.Close()

	rows, err := load(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return rows, nil
}

// LoadTables reads the table list.
func LoadTables(r io.Reader) ([]TableDescriptor, error) {
	recs, err := readRecords(r, ColTableName)
	if err != nil {
		return nil, &LoadError{Source: "tables", Err: err}
	}
	tables := make([]TableDescriptor, 0, len(recs.rows))
	for i := range recs.rows {
		tables = append(tables, TableDescriptor{Name: recs.get(i, ColTableName)})
	}
	return tables, nil
}

// LoadFields reads the field description list. isnull, isprimary, description,
// isidentity and isunique are optional.
func LoadFields(r io.Reader) ([]FieldDescriptor, error) {
	recs, err := readRecords(r, ColTableName, ColFieldName, ColDataType)
	if err != nil {
		return nil, &LoadError{Source: "fields", Err: err}
	}
	fields := make([]FieldDescriptor, 0, len(recs.rows))
	for i := range recs.rows {
		fields = append(fields, FieldDescriptor{
			TableName:   recs.get(i, ColTableName),
			FieldName:   recs.get(i, ColFieldName),
			DataType:    recs.get(i, ColDataType),
			IsNull:      recs.get(i, ColIsNull),
			IsPrimary:   recs.get(i, ColIsPrimary),
			Description: recs.get(i, ColDescription),
			IsIdentity:  recs.get(i, ColIsIdentity),
			IsUnique:    recs.get(i, ColIsUnique),
		})
	}
	return fields, nil
}

// LoadRelations reads the relation key list.
func LoadRelations(r io.Reader) ([]RelationDescriptor, error) {
	recs, err := readRecords(r, ColChildTable, ColChildColumn, ColParentTable, ColParentColumn)
	if err != nil {
		return nil, &LoadError{Source: "relations", Err: err}
	}
	relations := make([]RelationDescriptor, 0, len(recs.rows))
	for i := range recs.rows {
		relations = append(relations, RelationDescriptor{
			ChildTable:   recs.get(i, ColChildTable),
			ChildColumn:  recs.get(i, ColChildColumn),
			ParentTable:  recs.get(i, ColParentTable),
			ParentColumn: recs.get(i, ColParentColumn),
		})
	}
	return relations, nil
}

type records struct {
	index map[string]int
	rows  [][]string
}

// get returns "" for absent columns and for short rows.
func (r *records) get(row int, col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.rows[row]) {
		return ""
	}
	return r.rows[row][i]
}

func readRecords(r io.Reader, required ...string) (*records, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: header row expected")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	recs := &records{index: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.ToLower(name)
		if _, dup := recs.index[name]; !dup {
			recs.index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := recs.index[col]; !ok {
			return nil, fmt.Errorf("%w %q (header: %s)", ErrMissingColumn, col, strings.Join(header, string(Separator)))
		}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %d fields, header has %d", line, len(row), len(header))
		}
		recs.rows = append(recs.rows, row)
	}
	return recs, nil
}
