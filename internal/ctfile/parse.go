package ctfile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"foldfeat/internal/logging"
)

// MinFields is the number of whitespace-separated columns a data line needs.
const MinFields = 6

// Rejection reasons.
const (
	ReasonFieldCount = "field count"
	ReasonNotInteger = "non-integer field"
)

const maxLineBytes = 1 << 20

// integerColumns are the CT columns that must parse as integers.
var integerColumns = [...]int{0, 2, 3, 4, 5}

// Record is one accepted CT data line.
type Record struct {
	Index    int
	Base     string
	Prev     int
	Next     int
	Partner  int
	StrandID int
}

// Paired reports whether the record has a structural partner.
func (r Record) Paired() bool {
	return r.Partner > 0
}

// Rejected describes a data line that was skipped.
type Rejected struct {
	Line   int
	Text   string
	Reason string
}

// Result is the outcome of parsing one CT stream.
type Result struct {
	Records  []Record
	Rejected []Rejected
}

// Bases returns the base letters of the accepted records in order.
func (r Result) Bases() []string {
	bases := make([]string, len(r.Records))
	for i, rec := range r.Records {
		bases[i] = rec.Base
	}
	return bases
}

// Options tunes parsing.
type Options struct {
	// UppercaseBases folds base letters to upper case.
	UppercaseBases bool
}

// Parse reads CT records from r. Malformed lines are collected in
// Result.Rejected and logged; only read errors are returned.
func Parse(r io.Reader, opts Options, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var upper cases.Caser
	if opts.UppercaseBases {
		upper = cases.Upper(language.Und)
	}

	var result Result
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isHeader(line) {
			continue
		}

		rec, reason := parseLine(trimmed)
		if reason != "" {
			result.Rejected = append(result.Rejected, Rejected{Line: lineNo, Text: trimmed, Reason: reason})
			logging.WarnWithContext(logger, "skipping malformed ct line", "ct_line_rejected",
				logging.Int("line", lineNo),
				logging.String("reason", reason),
				logging.String("text", trimmed),
				logging.String(logging.FieldImpact, "position dropped from feature table"),
			)
			continue
		}
		if opts.UppercaseBases {
			rec.Base = upper.String(rec.Base)
		}
		result.Records = append(result.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read ct data: %w", err)
	}
	return result, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts Options, logger *slog.Logger) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open ct file: %w", err)
	}
	defer file.Close()
	return Parse(file, opts, logger)
}

// isHeader reports whether the raw line starts with a letter. Leading
// whitespace is not skipped: data lines in CT files are often indented.
func isHeader(line string) bool {
	c := line[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func parseLine(line string) (Record, string) {
	fields := strings.Fields(line)
	if len(fields) < MinFields {
		return Record{}, ReasonFieldCount
	}
	var values [MinFields]int
	for _, col := range integerColumns {
		if !isInteger(fields[col]) {
			return Record{}, ReasonNotInteger
		}
		n, err := strconv.Atoi(fields[col])
		if err != nil {
			return Record{}, ReasonNotInteger
		}
		values[col] = n
	}
	return Record{
		Index:    values[0],
		Base:     fields[1],
		Prev:     values[2],
		Next:     values[3],
		Partner:  values[4],
		StrandID: values[5],
	}, ""
}

// isInteger accepts ASCII digits with an optional leading minus sign.
func isInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
