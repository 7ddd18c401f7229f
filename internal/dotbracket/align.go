package dotbracket

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Structure symbols.
const (
	Open     byte = '('
	Close    byte = ')'
	Unpaired byte = '.'
)

// Status describes how a structure string related to the record count.
type Status int

const (
	// Aligned means the structure length matched the record count.
	Aligned Status = iota
	// Truncated means extra trailing symbols were dropped.
	Truncated
	// Missing means no structure line was found.
	Missing
	// TooShort means the structure had fewer symbols than records.
	TooShort
)

func (s Status) String() string {
	switch s {
	case Aligned:
		return "aligned"
	case Truncated:
		return "truncated"
	case Missing:
		return "missing"
	case TooShort:
		return "too_short"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Usable reports whether the alignment carries symbols for every position.
func (s Status) Usable() bool {
	return s == Aligned || s == Truncated
}

// Alignment is a structure string fitted to N records.
type Alignment struct {
	Symbols []byte
	Status  Status
	// LastOpen is the 1-based index of the last '(' or 0 when there is none.
	LastOpen int
	// FirstClose is the 1-based index of the first ')' or N+1 when there is none.
	FirstClose int
}

// Len returns the number of aligned symbols.
func (a Alignment) Len() int {
	return len(a.Symbols)
}

// At returns the symbol at 1-based position pos, or 0 when out of range.
func (a Alignment) At(pos int) byte {
	if pos < 1 || pos > len(a.Symbols) {
		return 0
	}
	return a.Symbols[pos-1]
}

// Align fits structure to n records.
func Align(structure string, n int) Alignment {
	structure = strings.TrimSpace(structure)
	switch {
	case structure == "":
		return Alignment{Status: Missing, FirstClose: n + 1}
	case len(structure) < n:
		return Alignment{Status: TooShort, FirstClose: n + 1}
	}

	status := Aligned
	if len(structure) > n {
		status = Truncated
	}
	symbols := []byte(structure[:n])

	align := Alignment{Symbols: symbols, Status: status, FirstClose: n + 1}
	for i, sym := range symbols {
		switch sym {
		case Open:
			align.LastOpen = i + 1
		case Close:
			if align.FirstClose == n+1 {
				align.FirstClose = i + 1
			}
		}
	}
	return align
}

// Extract returns the first line of r made only of structure symbols. An
// empty string with a nil error means no such line exists.
func Extract(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if IsStructure(line) {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read structure data: %w", err)
	}
	return "", nil
}

// ExtractFile opens path and runs Extract on it.
func ExtractFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open dot-bracket file: %w", err)
	}
	defer file.Close()
	return Extract(file)
}

// IsStructure reports whether s is non-empty and contains only '(', ')'
// and '.'.
func IsStructure(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case Open, Close, Unpaired:
		default:
			return false
		}
	}
	return true
}
