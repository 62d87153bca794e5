package schema_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"nl2sql/internal/dialect"
	"nl2sql/internal/schema"
)

func TestSortTablesByFKCount_ComplexCircular(t *testing.T) {
	// A -> B -> C -> D -> E -> A (cycle)
	// F -> E
	// G independent
	tables := []*schema.Table{
		{Name: "A", Dependencies: []string{"B"}},
		{Name: "B", Dependencies: []string{"C"}},
		{Name: "C", Dependencies: []string{"D"}},
		{Name: "D", Dependencies: []string{"E"}},
		{Name: "E", Dependencies: []string{"A"}},
		{Name: "F", Dependencies: []string{"E"}},
		{Name: "G", Dependencies: []string{}},
	}

	sorted := schema.SortTablesByFKCount(tables)

	if len(sorted) != len(tables) {
		t.Fatalf("Expected %d tables, got %d", len(tables), len(sorted))
	}
	if sorted[0].Name != "G" {
		t.Errorf("Expected independent table G first, got %s", sorted[0].Name)
	}

	pos := make(map[string]int)
	for i, tbl := range sorted {
		pos[tbl.Name] = i
	}
	if pos["F"] < pos["E"] {
		t.Errorf("F placed before its parent E: %v", pos)
	}
}

func TestSortTablesByFKCount_Simple(t *testing.T) {
	tables := []*schema.Table{
		{Name: "OrderItems", Dependencies: []string{"Orders"}},
		{Name: "Orders", Dependencies: []string{"Users"}},
		{Name: "Users", Dependencies: []string{}},
	}

	sorted := schema.SortTablesByFKCount(tables)

	want := []string{"Users", "Orders", "OrderItems"}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, sorted[i].Name)
		}
	}
}

func TestSortTablesByFKCount_UnknownAndSelfDependencies(t *testing.T) {
	tables := []*schema.Table{
		{Name: "Employee", Dependencies: []string{"Employee", "Department"}},
		{Name: "Department", Dependencies: []string{"Company"}}, // Company is not in the list
	}

	sorted := schema.SortTablesByFKCount(tables)

	if sorted[0].Name != "Department" || sorted[1].Name != "Employee" {
		t.Errorf("unexpected order: %s, %s", sorted[0].Name, sorted[1].Name)
	}
}

func TestAnalyze_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "analyze.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	ddl := []string{
		`CREATE TABLE Invoice (
			Id INTEGER NOT NULL PRIMARY KEY,
			CustomerId INT NOT NULL REFERENCES Customer(Id),
			ParentId INT REFERENCES Invoice(Id),
			Email NVARCHAR(80) UNIQUE
		)`,
		`CREATE TABLE Customer (
			Id INT NOT NULL,
			Name NVARCHAR(40),
			CONSTRAINT PK_Customer PRIMARY KEY (Id)
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	tables, err := schema.Analyze(ctx, db, dialect.GetDialect("sqlite"), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[0].Name != "Customer" || tables[1].Name != "Invoice" {
		t.Fatalf("expected Customer before Invoice, got %s, %s", tables[0].Name, tables[1].Name)
	}

	customer := tables[0]
	if pk := customer.PrimaryKey(); len(pk) != 1 || pk[0] != "Id" {
		t.Errorf("Customer PK = %v", pk)
	}
	if c := customer.Column("Name"); c == nil || !c.IsNullable || c.DataType != "NVARCHAR(40)" {
		t.Errorf("Customer.Name = %+v", c)
	}
	if c := customer.Column("Id"); c == nil || c.IsNullable {
		t.Errorf("Customer.Id = %+v", c)
	}

	invoice := tables[1]
	if len(invoice.ForeignKeys) != 2 {
		t.Fatalf("Invoice foreign keys = %d", len(invoice.ForeignKeys))
	}
	if len(invoice.Dependencies) != 1 || invoice.Dependencies[0] != "Customer" {
		t.Errorf("Invoice dependencies = %v", invoice.Dependencies)
	}
	fk := invoice.ForeignKeyFor("CustomerId")
	if fk == nil || fk.RefTable != "Customer" || fk.RefColumn != "Id" {
		t.Errorf("CustomerId FK = %+v", fk)
	}
	if c := invoice.Column("Email"); c == nil || c.Meaning != "email" || !c.IsUnique || c.SQLType != "nvarchar" {
		t.Errorf("Invoice.Email = %+v", c)
	}
	if c := invoice.Column("Id"); c == nil || !c.IsAutoInc || c.SQLType != "int" {
		t.Errorf("Invoice.Id = %+v", c)
	}
	if c := customer.Column("Id"); c == nil || c.IsAutoInc || c.IsUnique {
		t.Errorf("Customer.Id flags = %+v", c)
	}
}
