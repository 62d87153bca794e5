package engine

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"nl2sql/internal/dialect"
)

var (
	addConstraintPattern = regexp.MustCompile(`(?is)^\s*ALTER\s+TABLE\s+.+\s+ADD\s+CONSTRAINT\s`)
	bracketIdentPattern  = regexp.MustCompile(`(?im)(?:\b(?:TABLE|REFERENCES|CONSTRAINT|INTO)\s+|^\s*|\(\s*)\[[A-Za-z_][^\]]*\]`)
)

// ErrBracketIdentifiers is returned when a script quotes identifiers as [Name] and the
// target database cannot parse that.
var ErrBracketIdentifiers = errors.New("script uses [bracket] identifiers")

// ApplyResult summarises a script execution.
type ApplyResult struct {
	Executed int
	Skipped  int // ADD CONSTRAINT statements the dialect cannot run
}

// TableCheck reports whether a compiled table exists after applying.
type TableCheck struct {
	Name   string
	Exists bool
}

// Apply executes statements in order inside one transaction. A failing statement rolls
// everything back. Engines that commit DDL implicitly (MySQL, Oracle) cannot undo the
// statements that already ran. onProgress is called once per statement, including skipped ones.
func Apply(ctx context.Context, db *sql.DB, d dialect.Dialect, statements []string, onProgress func()) (*ApplyResult, error) {
	if err := CheckScript(d, statements); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	res := &ApplyResult{}
	for i, stmt := range statements {
		if IsAddConstraint(stmt) && !d.SupportsAddConstraint() {
			log.Printf("Skipping statement %d: dialect cannot add constraints after CREATE TABLE", i+1)
			res.Skipped++
		} else {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return nil, fmt.Errorf("statement %d failed: %w\n%s", i+1, err, stmt)
			}
			res.Executed++
		}
		if onProgress != nil {
			onProgress()
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	tx = nil
	return res, nil
}

// CheckScript fails with ErrBracketIdentifiers when a statement quotes identifiers as
// [Name] and d cannot parse them. Nothing is sent to the database.
func CheckScript(d dialect.Dialect, statements []string) error {
	if d.SupportsBracketIdentifiers() {
		return nil
	}
	for i, stmt := range statements {
		if bracketIdentPattern.MatchString(stmt) {
			return fmt.Errorf("statement %d: %w; %T cannot run it, apply to SQL Server or SQLite instead", i+1, ErrBracketIdentifiers, d)
		}
	}
	return nil
}

// IsAddConstraint reports whether stmt is an ALTER TABLE ... ADD CONSTRAINT statement.
func IsAddConstraint(stmt string) bool {
	return addConstraintPattern.MatchString(stmt)
}

// SplitScript splits a script into statements at lines ending with ';'. Blank lines
// between statements are dropped; blank lines inside a statement are kept.
func SplitScript(script string) []string {
	var stmts []string
	var cur []string

	sc := bufio.NewScanner(strings.NewReader(script))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if len(cur) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		cur = append(cur, line)
		if strings.HasSuffix(strings.TrimSpace(line), ";") {
			stmts = append(stmts, strings.Join(cur, "\n"))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		if stmt := strings.TrimSpace(strings.Join(cur, "\n")); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// VerifyTables looks each name up in the database's table list, case-insensitively.
func VerifyTables(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string, names []string) ([]TableCheck, error) {
	target := d.GetSchemaName(schemaName)
	rows, err := db.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		existing[strings.ToUpper(name)] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	checks := make([]TableCheck, 0, len(names))
	for _, n := range names {
		checks = append(checks, TableCheck{Name: n, Exists: existing[strings.ToUpper(n)]})
	}
	return checks, nil
}
