package extract_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foldfeat/internal/extract"
	"foldfeat/internal/features"
	"foldfeat/internal/logging"
	"foldfeat/internal/testsupport"
)

func newExtractor(t *testing.T, buf *bytes.Buffer) *extract.Extractor {
	t.Helper()
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := testsupport.NewConfig(t)
	return extract.New(extract.SettingsFromConfig(cfg), logger)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRunWritesFeatureTable(t *testing.T) {
	dir := t.TempDir()
	ctPath, dotPath := testsupport.WriteSequence(t, dir, "hairpin", "GGAACC", "((..))")
	out := filepath.Join(dir, "out", "processed_features.csv")

	var logs bytes.Buffer
	report, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{
		Name: "hairpin", CTPath: ctPath, DotPath: dotPath, OutputPath: out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Records != 6 || report.Rejected != 0 || report.Steps != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Degraded || report.Structure != "aligned" || report.Format != "csv" {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.RunID == "" {
		t.Fatal("expected run id")
	}

	lines := readLines(t, out)
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	roles := make([]string, 0, 6)
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		roles = append(roles, fields[len(fields)-1])
	}
	if got := strings.Join(roles, ""); got != "MMLLMM" {
		t.Fatalf("roles = %s", got)
	}

	for _, want := range []string{"Successfully processed 6 rows", report.RunID, `"sequence":"hairpin"`} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("expected %q in logs %s", want, logs.String())
		}
	}
}

func TestRunSkipsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	ct := strings.Join([]string{
		"1 G 0 2 4 1",
		"2 A 1 3 0 2",
		"3 A 2 4",
		"4 A 3 5 0 4",
		"5 C 4 0 1 5",
	}, "\n") + "\n"
	ctPath := filepath.Join(dir, "seq.ct")
	dotPath := filepath.Join(dir, "seq.dot")
	testsupport.WriteFile(t, ctPath, ct)
	testsupport.WriteFile(t, dotPath, "(..)\n")
	out := filepath.Join(dir, "seq.csv")

	var logs bytes.Buffer
	report, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{CTPath: ctPath, DotPath: dotPath, OutputPath: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Records != 4 || report.Rejected != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := len(readLines(t, out)) - 1; got != 4 {
		t.Fatalf("expected 4 rows, got %d", got)
	}
	if !strings.Contains(logs.String(), "ct_line_rejected") {
		t.Fatalf("expected rejection warning in logs %s", logs.String())
	}
}

func TestRunWithoutStructureIsDegraded(t *testing.T) {
	dir := t.TempDir()
	ctPath := filepath.Join(dir, "seq.ct")
	dotPath := filepath.Join(dir, "seq.dot")
	testsupport.WriteFile(t, ctPath, testsupport.CT("seq", "GGAACC", "((..))"))
	testsupport.WriteFile(t, dotPath, ">seq\nGGAACC\n")
	out := filepath.Join(dir, "seq.csv")

	var logs bytes.Buffer
	report, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{CTPath: ctPath, DotPath: dotPath, OutputPath: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Degraded || report.Structure != "missing" || report.Unresolved != 6 || report.Steps != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	lines := readLines(t, out)
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if fields[len(fields)-1] != "" {
			t.Fatalf("expected blank role in %q", line)
		}
		for _, cross := range fields[7:14] {
			if cross != "N" {
				t.Fatalf("expected default cross features in %q", line)
			}
		}
	}
	if !strings.Contains(logs.String(), "structure_missing") {
		t.Fatalf("expected structure warning in logs %s", logs.String())
	}
}

func TestRunShortStructureSkipsTraversal(t *testing.T) {
	dir := t.TempDir()
	ctPath := filepath.Join(dir, "seq.ct")
	dotPath := filepath.Join(dir, "seq.dot")
	testsupport.WriteFile(t, ctPath, testsupport.CT("seq", "GGAACC", "((..))"))
	testsupport.WriteFile(t, dotPath, "((..\n")

	var logs bytes.Buffer
	report, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{
		CTPath: ctPath, DotPath: dotPath, OutputPath: filepath.Join(dir, "seq.csv"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Structure != "too_short" || !report.Degraded || len(report.Notes) == 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunEmptyCTWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	ctPath := filepath.Join(dir, "seq.ct")
	dotPath := filepath.Join(dir, "seq.dot")
	testsupport.WriteFile(t, ctPath, "Header only\n")
	testsupport.WriteFile(t, dotPath, "((..))\n")
	out := filepath.Join(dir, "seq.csv")

	var logs bytes.Buffer
	report, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{CTPath: ctPath, DotPath: dotPath, OutputPath: out})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !errors.Is(report.Issue, extract.ErrNoRecords) || !report.Degraded {
		t.Fatalf("expected ErrNoRecords issue, got %+v", report)
	}
	if lines := readLines(t, out); len(lines) != 1 {
		t.Fatalf("expected header only, got %v", lines)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	ctPath, _ := testsupport.WriteSequence(t, dir, "seq", "GGAACC", "((..))")
	out := filepath.Join(dir, "seq.csv")

	var logs bytes.Buffer
	_, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{
		CTPath: ctPath, DotPath: filepath.Join(dir, "absent.dot"), OutputPath: out,
	})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, fs.ErrNotExist) {
		t.Fatalf("expected no output file, got %v", statErr)
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	ctPath, dotPath := testsupport.WriteSequence(t, dir, "seq", "GGAACC", "((..))")
	var logs bytes.Buffer
	_, err := newExtractor(t, &logs).Run(context.Background(), extract.Job{
		CTPath: ctPath, DotPath: dotPath, OutputPath: filepath.Join(dir, "seq.out"), Format: "xlsx",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestBuildHonoursStemEndMargin(t *testing.T) {
	dir := t.TempDir()
	ctPath, dotPath := testsupport.WriteSequence(t, dir, "seq", "GGAACC", "((..))")
	cfg := testsupport.NewConfig(t, testsupport.WithStemEndMargin(3))

	res, err := extract.New(extract.SettingsFromConfig(cfg), nil).Build(context.Background(), extract.Job{CTPath: ctPath, DotPath: dotPath})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(res.Rows))
	}
	if res.Rows[0].Role != features.Unresolved || res.Rows[2].Role != features.HairpinLoop {
		t.Fatalf("unexpected roles %v %v", res.Rows[0].Role, res.Rows[2].Role)
	}
	if res.Report.Unresolved != 4 || !res.Report.Degraded || res.Report.StemPairs != 0 {
		t.Fatalf("unexpected report %+v", res.Report)
	}
}

func TestBuildStemEndMarginKeepsPairAfterBulge(t *testing.T) {
	dir := t.TempDir()
	ctPath, dotPath := testsupport.WriteSequence(t, dir, "seq", "AAAGAAACAA", "...(...)..")
	cfg := testsupport.NewConfig(t, testsupport.WithStemEndMargin(3))

	res, err := extract.New(extract.SettingsFromConfig(cfg), nil).Build(context.Background(), extract.Job{CTPath: ctPath, DotPath: dotPath})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Report.StemPairs != 1 || res.Report.Degraded {
		t.Fatalf("unexpected report %+v", res.Report)
	}
	if res.Rows[3].Role != features.StemPair || res.Rows[7].Role != features.StemPair {
		t.Fatalf("roles at 4 and 8 = %v %v", res.Rows[3].Role, res.Rows[7].Role)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctPath, dotPath := testsupport.WriteSequence(t, dir, "seq", "GCAAAGCUUCGC", "(...((..)).)")
	out := filepath.Join(dir, "seq.tsv")
	var logs bytes.Buffer
	ex := newExtractor(t, &logs)
	job := extract.Job{CTPath: ctPath, DotPath: dotPath, OutputPath: out, Format: "tsv"}

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		if _, err := ex.Run(context.Background(), job); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatal("outputs differ between runs")
	}
}
