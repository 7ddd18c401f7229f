package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// CT renders a connectivity table for seq with partners taken from
// structure. The header line starts with name, so name should start with a
// letter.
func CT(name, seq, structure string) string {
	partners := Partners(structure)
	var b strings.Builder
	fmt.Fprintf(&b, "%s  dG = -1.00\n", name)
	for i := 0; i < len(seq); i++ {
		pos := i + 1
		next := pos + 1
		if pos == len(seq) {
			next = 0
		}
		partner := 0
		if i < len(partners) {
			partner = partners[i]
		}
		fmt.Fprintf(&b, "%5d %c %5d %5d %5d %5d\n", pos, seq[i], pos-1, next, partner, pos)
	}
	return b.String()
}

// Dot renders a companion dot-bracket file.
func Dot(name, seq, structure string) string {
	return fmt.Sprintf(">%s\n%s\n%s\n", name, seq, structure)
}

// Partners returns 1-based bracket partners for structure, 0 when unpaired.
// Unbalanced brackets are left unpaired.
func Partners(structure string) []int {
	partners := make([]int, len(structure))
	var stack []int
	for i, c := range structure {
		switch c {
		case '(':
			stack = append(stack, i)
		case ')':
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			partners[open] = i + 1
			partners[i] = open + 1
		}
	}
	return partners
}

// WriteSequence writes name.ct and name.dot under dir and returns both
// paths.
func WriteSequence(t testing.TB, dir, name, seq, structure string) (string, string) {
	t.Helper()

	ctPath := filepath.Join(dir, name+".ct")
	dotPath := filepath.Join(dir, name+".dot")
	WriteFile(t, ctPath, CT(name, seq, structure))
	WriteFile(t, dotPath, Dot(name, seq, structure))
	return ctPath, dotPath
}
