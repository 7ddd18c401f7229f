package table

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foldfeat/internal/dotbracket"
	"foldfeat/internal/features"
)

func exampleRows(t *testing.T) []Row {
	t.Helper()
	bases := strings.Split("GGAACC", "")
	tr := features.Traverse(bases, dotbracket.Align("((..))", len(bases)), features.Options{})
	rows, err := Assemble(bases, features.StrandNeighbors(bases, ""), tr)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return rows
}

func TestAssembleRejectsLengthMismatch(t *testing.T) {
	bases := []string{"A", "C"}
	tr := features.Traverse(bases, dotbracket.Align("..", 2), features.Options{})
	if _, err := Assemble(bases, features.StrandNeighbors(bases[:1], ""), tr); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCSVLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode("csv", &buf, exampleRows(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header plus 6 rows, got %d lines", len(lines))
	}
	wantHeader := "base,strand_+1,strand_-1,strand_+2,strand_-2,strand_+3,strand_-3," +
		"cross_+1,cross_-1,cross_+2,cross_-2,cross_strand,cross_+3,cross_-3,role"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "G,G,N,A,N,A,N,N,C,N,A,C,N,A,M" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[3] != "A,A,G,C,G,C,N,N,N,N,N,N,N,N,L" {
		t.Fatalf("row 3 = %q", lines[3])
	}
}

func TestTSVUsesTabs(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode("TSV", &buf, exampleRows(t)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if strings.Count(first, "\t") != len(Columns)-1 {
		t.Fatalf("unexpected header %q", first)
	}
}

func TestUnresolvedRoleIsBlank(t *testing.T) {
	bases := []string{"A", "C"}
	tr := features.Traverse(bases, dotbracket.Align("", 2), features.Options{})
	rows, err := Assemble(bases, features.StrandNeighbors(bases, ""), tr)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode("csv", &buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[1] != "A,C,N,N,N,N,N,N,N,N,N,N,N,N," {
		t.Fatalf("row 1 = %q", lines[1])
	}
}

func TestLookupUnknownFormat(t *testing.T) {
	if _, err := Lookup("parquet"); err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
	if err := Encode("sqlite", &bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected sqlite to refuse streaming")
	}
}

func TestNamesSorted(t *testing.T) {
	got := strings.Join(Names(), ",")
	if got != "csv,pretty,sqlite,tsv" {
		t.Fatalf("Names() = %s", got)
	}
}

func TestWriteFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_features.csv")
	rows := exampleRows(t)
	ctx := context.Background()

	if err := WriteFile(ctx, "csv", path, rows); err != nil {
		t.Fatalf("first write: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(ctx, "csv", path, rows); err != nil {
		t.Fatalf("second write: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("repeated writes differ")
	}
}

func TestWriteFileOverwritesLongerTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	ctx := context.Background()
	if err := WriteFile(ctx, "csv", path, exampleRows(t)); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(ctx, "csv", path, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected header-only table, got %q", data)
	}
}

func TestWriteFileSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "features.db")
	ctx := context.Background()
	rows := exampleRows(t)
	for i := 0; i < 2; i++ {
		if err := WriteFile(ctx, "sqlite", path, rows); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + SQLiteTable).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), count)
	}
	var base, cross, role string
	err = db.QueryRow(`SELECT base, "cross_strand", role FROM features WHERE position = 6`).Scan(&base, &cross, &role)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if base != "C" || cross != "G" || role != "M" {
		t.Fatalf("unexpected row 6: base=%s cross=%s role=%s", base, cross, role)
	}
}

func TestRenderIncludesHeaderAndPositions(t *testing.T) {
	out := Render(exampleRows(t))
	for _, want := range []string{"cross_strand", "role", "╭"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in render output:\n%s", want, out)
		}
	}
}
