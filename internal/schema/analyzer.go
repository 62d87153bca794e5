package schema

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"nl2sql/internal/dialect"
)

// Analyze reads tables, columns and foreign keys of a live database and returns them
// in dependency order.
func Analyze(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) ([]*Table, error) {
	target := d.GetSchemaName(schemaName)

	// Keys are upper-cased so Oracle's case handling does not break lookups.
	tableMap := make(map[string]*Table)
	var tables []*Table

	// --- Tables ---
	rows, err := db.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		t := &Table{Name: name, Dependencies: []string{}}
		tableMap[strings.ToUpper(name)] = t
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Columns ---
	colRows, err := db.QueryContext(ctx, d.GetColumnsQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var tName, cName, dType, cType, cLen, isNull, cKey, extra, isUnique, comment sql.NullString
		if err := colRows.Scan(&tName, &cName, &dType, &cType, &cLen, &isNull, &cKey, &extra, &isUnique, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		declared := dType.String
		if cType.Valid && cType.String != "" {
			declared = cType.String
		}

		extraLower := strings.ToLower(extra.String)
		col := &Column{
			Name:       cName.String,
			DataType:   declared,
			SQLType:    d.NormalizeType(dType.String),
			Length:     parseLength(cLen.String),
			IsNullable: isNull.String == "YES" || isNull.String == "Y",
			IsPK:       strings.Contains(cKey.String, "PRI"),
			IsAutoInc: strings.Contains(extraLower, "auto_increment") ||
				strings.Contains(extraLower, "identity") ||
				strings.Contains(extraLower, "nextval"),
			IsUnique: strings.Contains(isUnique.String, "UNIQUE"),
			Comment:  comment.String,
			Meaning:  AnalyzeMeaning(cName.String, comment.String),
		}
		t.Columns = append(t.Columns, col)
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Foreign keys ---
	fkRows, err := db.QueryContext(ctx, d.GetForeignKeysQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer fkRows.Close()

	for fkRows.Next() {
		var tName, cConst, cName, rTable, rCol sql.NullString
		if err := fkRows.Scan(&tName, &cConst, &cName, &rTable, &rCol); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}
		// References outside the analyzed schema are dropped.
		ref, ok := tableMap[strings.ToUpper(rTable.String)]
		if !ok {
			continue
		}

		t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
			Name:      cConst.String,
			Table:     t.Name,
			Column:    cName.String,
			RefTable:  ref.Name,
			RefColumn: rCol.String,
		})
		if ref != t && !slices.Contains(t.Dependencies, ref.Name) {
			t.Dependencies = append(t.Dependencies, ref.Name)
		}
	}
	if err := fkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating foreign keys: %w", err)
	}

	return SortTablesByFKCount(tables), nil
}

// parseLength accepts integer or float text; drivers disagree on the type of
// CHARACTER_MAXIMUM_LENGTH. Non-positive values (e.g. -1 for MAX) mean "no length".
func parseLength(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

