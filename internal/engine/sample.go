package engine

import (
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"strings"

	"nl2sql/internal/schema"
)

// SampleResult is one table's share of a sample script.
type SampleResult struct {
	TableName string
	Target    int
	Actual    int
}

// SampleScript generates up to rows INSERT statements per table, parents before
// children. Single integer primary keys count up from 1. Identity columns are left out
// of the INSERT and assumed to count up from 1, which holds for freshly created tables.
// Other keys and unique columns are drawn at random and duplicates are retried, up to
// ten attempts per requested row. Foreign key columns cycle through the values already
// generated for the referenced column; when there are none they get NULL if nullable
// and a generated value otherwise.
func SampleScript(tables []*schema.Table, rows int, gen *Generator) (string, []SampleResult) {
	pool := make(map[string][]any)
	var stmts []string
	var results []SampleResult

	for _, t := range schema.SortTablesByFKCount(tables) {
		if len(t.Columns) == 0 {
			continue
		}
		pk := t.PrimaryKey()
		sequential := len(pk) == 1 && isIntegerType(t.Column(pk[0])) && t.ForeignKeyFor(pk[0]) == nil

		var cols []string
		for _, c := range t.Columns {
			if !c.IsAutoInc {
				cols = append(cols, quoteIdent(c.Name))
			}
		}
		prefix := fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", quoteIdent(t.Name))
		if len(cols) > 0 {
			prefix = fmt.Sprintf("INSERT INTO %s (%s) VALUES (", quoteIdent(t.Name), strings.Join(cols, ", "))
		}

		usedKeys := make(map[string]bool)
		usedValues := make(map[string]map[string]bool)
		inserted, attempts := 0, 0
		for inserted < rows && attempts < rows*10 {
			attempts++

			values := make([]any, len(t.Columns))
			for i, c := range t.Columns {
				switch fk := t.ForeignKeyFor(c.Name); {
				case c.IsAutoInc, sequential && c.IsPK:
					values[i] = inserted + 1
				case fk != nil:
					values[i] = pickReference(pool[poolKey(fk.RefTable, fk.RefColumn)], inserted, c, t.Name, gen)
				default:
					values[i] = gen.GenerateValue(c, t.Name)
				}
			}

			key := pkKey(t, values)
			if len(pk) > 0 && usedKeys[key] {
				continue
			}
			if !claimUnique(t, values, usedValues) {
				continue
			}
			usedKeys[key] = true

			var literals []string
			for i, v := range values {
				c := t.Columns[i]
				if !c.IsAutoInc {
					literals = append(literals, Literal(v))
				}
				pool[poolKey(t.Name, c.Name)] = append(pool[poolKey(t.Name, c.Name)], v)
			}
			if len(literals) > 0 {
				stmts = append(stmts, prefix+strings.Join(literals, ", ")+");")
			} else {
				stmts = append(stmts, prefix+";")
			}
			inserted++
		}

		if inserted < rows {
			log.Printf("[Sample] %s: only %d of %d rows after %d attempts (key space exhausted?)", t.Name, inserted, rows, attempts)
		}
		results = append(results, SampleResult{TableName: t.Name, Target: rows, Actual: inserted})
	}

	if len(stmts) == 0 {
		return "", results
	}
	return strings.Join(stmts, "\n") + "\n", results
}

// claimUnique records the row's values for unique non-key columns, or reports false
// without recording anything when one of them was already used. NULLs never collide.
func claimUnique(t *schema.Table, values []any, used map[string]map[string]bool) bool {
	var claimed []int
	for i, c := range t.Columns {
		if !c.IsUnique || c.IsPK || c.IsAutoInc || values[i] == nil {
			continue
		}
		if used[c.Name][fmt.Sprint(values[i])] {
			return false
		}
		claimed = append(claimed, i)
	}
	for _, i := range claimed {
		name := t.Columns[i].Name
		if used[name] == nil {
			used[name] = make(map[string]bool)
		}
		used[name][fmt.Sprint(values[i])] = true
	}
	return true
}

func pickReference(vals []any, index int, col *schema.Column, tableName string, gen *Generator) any {
	if len(vals) > 0 {
		return vals[index%len(vals)]
	}
	if col.IsNullable {
		return nil
	}
	return gen.GenerateValue(col, tableName)
}

func pkKey(t *schema.Table, values []any) string {
	var parts []string
	for i, c := range t.Columns {
		if c.IsPK {
			parts = append(parts, fmt.Sprintf("%v", values[i]))
		}
	}
	return strings.Join(parts, "|")
}

func poolKey(table, column string) string {
	return table + "." + column
}

func isIntegerType(c *schema.Column) bool {
	if c == nil {
		return false
	}
	t := strings.ToLower(c.SQLType)
	if t == "" {
		t = strings.ToLower(c.DataType)
	}
	return strings.Contains(t, "int")
}

func quoteIdent(name string) string {
	return "[" + name + "]"
}

// Literal renders a generated value as a T-SQL literal.
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "N'" + strings.ReplaceAll(x, "'", "''") + "'"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case []byte:
		return "0x" + strings.ToUpper(hex.EncodeToString(x))
	default:
		return "N'" + strings.ReplaceAll(fmt.Sprint(x), "'", "''") + "'"
	}
}
