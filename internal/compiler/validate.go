package compiler

import (
	"fmt"
	"strings"

	"nl2sql/internal/schema"
)

// ValidationError lists every problem strict mode found.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed (%d problems):\n  %s",
		len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Validate checks that every foreign key references known tables and columns and that
// constraint names are unique. It returns nil or a *ValidationError.
func Validate(res *Result) error {
	tables := make(map[string]*schema.Table, len(res.Tables))
	for _, t := range res.Tables {
		if _, dup := tables[t.Name]; !dup {
			tables[t.Name] = t
		}
	}

	var problems []string
	checkEndpoint := func(fk *schema.ForeignKey, role, table, column string) {
		t, ok := tables[table]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: %s table %q is not defined", fk.Name, role, table))
			return
		}
		if t.Column(column) == nil {
			problems = append(problems, fmt.Sprintf("%s: %s column %q not found in table %q", fk.Name, role, column, table))
		}
	}

	seen := make(map[string]int, len(res.ForeignKeys))
	for i, fk := range res.ForeignKeys {
		checkEndpoint(fk, "child", fk.Table, fk.Column)
		checkEndpoint(fk, "parent", fk.RefTable, fk.RefColumn)

		if first, dup := seen[fk.Name]; dup {
			problems = append(problems, fmt.Sprintf("%s: constraint name used by relations %d and %d", fk.Name, first+1, i+1))
			continue
		}
		seen[fk.Name] = i
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
