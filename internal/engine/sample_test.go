package engine_test

import (
	"strings"
	"testing"

	"nl2sql/internal/compiler"
	"nl2sql/internal/engine"
	"nl2sql/internal/schema"
)

func TestSampleScript_ParentsFirst(t *testing.T) {
	res, err := compiler.Compile(chinookSet(), compiler.Options{})
	if err != nil {
		t.Fatal(err)
	}

	script, results := engine.SampleScript(res.Tables, 3, engine.NewGenerator(5, fixedNow))
	lines := strings.Split(strings.TrimSuffix(script, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 inserts, got %d:\n%s", len(lines), script)
	}
	for i, line := range lines {
		prefix := "INSERT INTO [Album] ([AlbumId], [Title]) VALUES ("
		if i >= 3 {
			prefix = "INSERT INTO [Track] ([TrackId], [AlbumId], [Name]) VALUES ("
		}
		if !strings.HasPrefix(line, prefix) || !strings.HasSuffix(line, ");") {
			t.Errorf("line %d = %q", i, line)
		}
	}

	// Sequential keys on Album, Track.AlbumId cycles through them.
	for i, want := range []string{"(1, ", "(2, ", "(3, "} {
		if !strings.Contains(lines[i], "VALUES "+want) {
			t.Errorf("album %d = %q", i, lines[i])
		}
	}
	for i, want := range []string{"VALUES (1, 1, ", "VALUES (2, 2, ", "VALUES (3, 3, "} {
		if !strings.Contains(lines[3+i], want) {
			t.Errorf("track %d = %q", i, lines[3+i])
		}
	}

	if len(results) != 2 || results[0].TableName != "Album" || results[0].Actual != 3 || results[1].Actual != 3 {
		t.Errorf("results = %+v", results)
	}
}

func TestSampleScript_Empty(t *testing.T) {
	script, results := engine.SampleScript(nil, 10, engine.NewGenerator(1, fixedNow))
	if script != "" || len(results) != 0 {
		t.Errorf("got %q, %v", script, results)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"O'Brien", "N'O''Brien'"},
		{42, "42"},
		{int64(-7), "-7"},
		{3.14159, "3.14"},
		{true, "1"},
		{false, "0"},
		{[]byte{0xde, 0xad}, "0xDEAD"},
	}
	for _, tt := range tests {
		if got := engine.Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSampleScript_IdentityColumnsOmitted(t *testing.T) {
	genre := &schema.Table{
		Name: "Genre",
		Columns: []*schema.Column{
			{Name: "GenreId", SQLType: "INT", IsPK: true, IsAutoInc: true},
			{Name: "Name", SQLType: "NVARCHAR(120)", Length: 120, Meaning: "name"},
		},
	}
	track := &schema.Table{
		Name: "Track",
		Columns: []*schema.Column{
			{Name: "TrackId", SQLType: "INT", IsPK: true},
			{Name: "GenreId", SQLType: "INT"},
		},
		ForeignKeys:  []*schema.ForeignKey{{Table: "Track", Column: "GenreId", RefTable: "Genre", RefColumn: "GenreId"}},
		Dependencies: []string{"Genre"},
	}
	seq := &schema.Table{
		Name:    "Seq",
		Columns: []*schema.Column{{Name: "Id", SQLType: "INT", IsPK: true, IsAutoInc: true}},
	}

	script, _ := engine.SampleScript([]*schema.Table{track, genre, seq}, 2, engine.NewGenerator(3, fixedNow))
	lines := strings.Split(strings.TrimSuffix(script, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 inserts, got:\n%s", script)
	}

	var genres, tracks, seqs []string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "INSERT INTO [Genre] "):
			genres = append(genres, l)
		case strings.HasPrefix(l, "INSERT INTO [Track] "):
			tracks = append(tracks, l)
		case strings.HasPrefix(l, "INSERT INTO [Seq] "):
			seqs = append(seqs, l)
		}
	}
	for _, l := range genres {
		if !strings.HasPrefix(l, "INSERT INTO [Genre] ([Name]) VALUES (N'") {
			t.Errorf("identity column should be omitted: %q", l)
		}
	}
	wantTracks := []string{
		"INSERT INTO [Track] ([TrackId], [GenreId]) VALUES (1, 1);",
		"INSERT INTO [Track] ([TrackId], [GenreId]) VALUES (2, 2);",
	}
	if len(tracks) != 2 || tracks[0] != wantTracks[0] || tracks[1] != wantTracks[1] {
		t.Errorf("tracks = %q, want %q", tracks, wantTracks)
	}
	if len(seqs) != 2 || seqs[0] != "INSERT INTO [Seq] DEFAULT VALUES;" {
		t.Errorf("seq = %q", seqs)
	}
}

func TestSampleScript_UniqueColumnsDistinct(t *testing.T) {
	flags := &schema.Table{
		Name:    "Flag",
		Columns: []*schema.Column{{Name: "Enabled", SQLType: "BIT", IsUnique: true}},
	}

	script, results := engine.SampleScript([]*schema.Table{flags}, 5, engine.NewGenerator(11, fixedNow))
	if results[0].Actual != 2 {
		t.Fatalf("a unique BIT column allows 2 rows, got %d:\n%s", results[0].Actual, script)
	}
	if !strings.Contains(script, "VALUES (1);") || !strings.Contains(script, "VALUES (0);") {
		t.Errorf("script = %q", script)
	}
}
