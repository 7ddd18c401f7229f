package dotbracket

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		name       string
		structure  string
		n          int
		status     Status
		symbols    string
		lastOpen   int
		firstClose int
	}{
		{name: "aligned", structure: "((..))", n: 6, status: Aligned, symbols: "((..))", lastOpen: 2, firstClose: 5},
		{name: "truncated", structure: "((..)).....", n: 6, status: Truncated, symbols: "((..))", lastOpen: 2, firstClose: 5},
		{name: "too short", structure: "((..", n: 6, status: TooShort, firstClose: 7},
		{name: "missing", structure: "", n: 4, status: Missing, firstClose: 5},
		{name: "no brackets", structure: "......", n: 6, status: Aligned, symbols: "......", lastOpen: 0, firstClose: 7},
		{name: "interleaved", structure: "(.)(.)", n: 6, status: Aligned, symbols: "(.)(.)", lastOpen: 4, firstClose: 3},
		{name: "empty records", structure: "", n: 0, status: Missing, firstClose: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Align(tc.structure, tc.n)
			if got.Status != tc.status {
				t.Fatalf("status = %v, want %v", got.Status, tc.status)
			}
			if string(got.Symbols) != tc.symbols {
				t.Fatalf("symbols = %q, want %q", got.Symbols, tc.symbols)
			}
			if got.LastOpen != tc.lastOpen || got.FirstClose != tc.firstClose {
				t.Fatalf("bounds = (%d,%d), want (%d,%d)", got.LastOpen, got.FirstClose, tc.lastOpen, tc.firstClose)
			}
		})
	}
}

func TestAlignmentAt(t *testing.T) {
	a := Align("(.)", 3)
	if a.At(1) != Open || a.At(2) != Unpaired || a.At(3) != Close {
		t.Fatalf("unexpected symbols %q", a.Symbols)
	}
	if a.At(0) != 0 || a.At(4) != 0 {
		t.Fatal("expected zero outside range")
	}
}

func TestStatusUsable(t *testing.T) {
	if !Aligned.Usable() || !Truncated.Usable() {
		t.Fatal("aligned and truncated should be usable")
	}
	if Missing.Usable() || TooShort.Usable() {
		t.Fatal("missing and too short should not be usable")
	}
}

func TestExtractSkipsHeaderAndSequence(t *testing.T) {
	input := ">seq1\nGGAACC\n((..)) (-1.20)\n((..))\n"
	got, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "((..))" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractNoStructure(t *testing.T) {
	got, err := Extract(strings.NewReader(">seq\nACGU\n\n"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty structure, got %q", got)
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.dot")
	if err := os.WriteFile(path, []byte("  ..((..))..  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if got != "..((..)).." {
		t.Fatalf("got %q", got)
	}

	_, err = ExtractFile(filepath.Join(t.TempDir(), "absent.dot"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
