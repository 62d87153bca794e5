package metadata_test

import (
	"bytes"
	"testing"

	"nl2sql/internal/metadata"
	"nl2sql/internal/schema"
)

func TestFromTables(t *testing.T) {
	tables := []*schema.Table{
		{
			Name: "Customer",
			Columns: []*schema.Column{
				{Name: "Id", DataType: "int", IsPK: true},
				{Name: "Name", DataType: "nvarchar", Length: 40, IsNullable: true, Comment: "display name"},
			},
		},
		{
			Name: "Invoice",
			Columns: []*schema.Column{
				{Name: "Id", DataType: "int", IsPK: true},
				{Name: "CustomerId", DataType: "varchar(10)", Length: 10},
			},
			ForeignKeys: []*schema.ForeignKey{
				{Column: "CustomerId", RefTable: "Customer", RefColumn: "Id"},
			},
		},
	}

	set := metadata.FromTables(tables)

	if len(set.Tables) != 2 || len(set.Fields) != 4 || len(set.Relations) != 1 {
		t.Fatalf("unexpected set sizes: %d/%d/%d", len(set.Tables), len(set.Fields), len(set.Relations))
	}
	name := set.Fields[1]
	if name.DataType != "nvarchar(40)" || name.IsNull != "YES" || name.IsPrimary != "" || name.Description != "display name" {
		t.Errorf("Name field = %+v", name)
	}
	id := set.Fields[0]
	if id.IsNull != "NO" || id.IsPrimary != "yes" {
		t.Errorf("Id field = %+v", id)
	}
	if got := set.Fields[3].DataType; got != "varchar(10)" {
		t.Errorf("length already in type should not be repeated, got %q", got)
	}
	want := metadata.RelationDescriptor{ChildTable: "Invoice", ChildColumn: "CustomerId", ParentTable: "Customer", ParentColumn: "Id"}
	if set.Relations[0] != want {
		t.Errorf("relation = %+v", set.Relations[0])
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	fields := []metadata.FieldDescriptor{
		{TableName: "Invoice", FieldName: "Id", DataType: "int", IsNull: "NO", IsPrimary: "yes"},
		{TableName: "Invoice", FieldName: "Amount", DataType: "decimal(10,2)", IsNull: "YES", Description: "total; incl. tax"},
	}

	var buf bytes.Buffer
	if err := metadata.WriteFields(&buf, fields); err != nil {
		t.Fatalf("WriteFields: %v", err)
	}
	got, err := metadata.LoadFields(&buf)
	if err != nil {
		t.Fatalf("LoadFields: %v", err)
	}
	if len(got) != len(fields) {
		t.Fatalf("got %d fields", len(got))
	}
	for i := range fields {
		if got[i] != fields[i] {
			t.Errorf("field %d = %+v, want %+v", i, got[i], fields[i])
		}
	}
}

func TestWriteDir(t *testing.T) {
	paths := metadata.PathsIn(t.TempDir() + "/nested")
	set := &metadata.Set{
		Tables:    []metadata.TableDescriptor{{Name: "A"}, {Name: "B"}},
		Fields:    []metadata.FieldDescriptor{{TableName: "A", FieldName: "id", DataType: "int"}},
		Relations: []metadata.RelationDescriptor{{ChildTable: "B", ChildColumn: "a_id", ParentTable: "A", ParentColumn: "id"}},
	}

	if err := metadata.Write(paths, set); err != nil {
		t.Fatalf("Write: %v", err)
	}
	loaded, err := metadata.Load(paths)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Tables) != 2 || loaded.Tables[1].Name != "B" {
		t.Errorf("tables = %+v", loaded.Tables)
	}
	if loaded.Relations[0] != set.Relations[0] {
		t.Errorf("relation = %+v", loaded.Relations[0])
	}
}

func TestFromTables_NormalizedTypesAndFlags(t *testing.T) {
	tables := []*schema.Table{{
		Name: "Track",
		Columns: []*schema.Column{
			{Name: "TrackId", DataType: "int4", SQLType: "int", IsPK: true, IsAutoInc: true},
			{Name: "Name", DataType: "NVARCHAR(200)", SQLType: "nvarchar", Length: 200},
			{Name: "Composer", DataType: "character varying", SQLType: "varchar", Length: 220, IsUnique: true},
			{Name: "UnitPrice", DataType: "decimal(10,2)", SQLType: "decimal"},
			{Name: "Guid", DataType: "uniqueidentifier", SQLType: "uniqueidentifier"},
		},
	}}

	fields := metadata.FromTables(tables).Fields
	wantTypes := []string{"int", "nvarchar(200)", "varchar(220)", "decimal(10,2)", "uniqueidentifier"}
	for i, want := range wantTypes {
		if fields[i].DataType != want {
			t.Errorf("%s: DataType = %q, want %q", fields[i].FieldName, fields[i].DataType, want)
		}
	}
	if !fields[0].Identity() || fields[1].Identity() {
		t.Errorf("identity flags = %q, %q", fields[0].IsIdentity, fields[1].IsIdentity)
	}
	if !fields[2].Unique() || fields[0].Unique() {
		t.Errorf("unique flags = %q, %q", fields[2].IsUnique, fields[0].IsUnique)
	}

	var buf bytes.Buffer
	if err := metadata.WriteFields(&buf, fields); err != nil {
		t.Fatal(err)
	}
	loaded, err := metadata.LoadFields(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded[0].Identity() || !loaded[2].Unique() {
		t.Errorf("flags lost in round trip: %+v", loaded)
	}
}
