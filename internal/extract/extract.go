package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"foldfeat/internal/config"
	"foldfeat/internal/ctfile"
	"foldfeat/internal/dotbracket"
	"foldfeat/internal/features"
	"foldfeat/internal/logging"
	"foldfeat/internal/table"
)

// ErrNoRecords marks a run whose CT input held no accepted records. It is
// reported on Report.Issue, never returned.
var ErrNoRecords = errors.New("no ct records to extract")

// Job names one extraction.
type Job struct {
	Name       string `json:"name"`
	CTPath     string `json:"ct"`
	DotPath    string `json:"dot"`
	OutputPath string `json:"output"`
	Format     string `json:"format"`
}

// Settings control feature derivation.
type Settings struct {
	Sentinel       string
	UppercaseBases bool
	StemEndMargin  int
	Format         string
}

// SettingsFromConfig copies extraction settings out of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return Settings{
		Sentinel:       cfg.Extract.SentinelBase,
		UppercaseBases: cfg.Extract.UppercaseBases,
		StemEndMargin:  cfg.Extract.StemEndMargin,
		Format:         cfg.Output.Format,
	}
}

// Report summarises one run.
type Report struct {
	RunID      string        `json:"run_id"`
	Name       string        `json:"name,omitempty"`
	OutputPath string        `json:"output,omitempty"`
	Format     string        `json:"format,omitempty"`
	Records    int           `json:"records"`
	Rejected   int           `json:"rejected"`
	Structure  string        `json:"structure_status"`
	Steps      int           `json:"steps"`
	StemPairs  int           `json:"stem_pairs"`
	Unresolved int           `json:"unresolved"`
	Degraded   bool          `json:"degraded"`
	Notes      []string      `json:"notes,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	// Issue carries an informational sentinel such as ErrNoRecords.
	Issue error `json:"-"`
}

// Result is a Report plus the assembled rows.
type Result struct {
	Report Report
	Rows   []table.Row
}

// Extractor runs extraction jobs.
type Extractor struct {
	settings Settings
	logger   *slog.Logger
}

// New returns an Extractor. A nil logger discards output.
func New(settings Settings, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(settings.Format) == "" {
		settings.Format = "csv"
	}
	return &Extractor{
		settings: settings,
		logger:   logging.NewComponentLogger(logger, "extract"),
	}
}

// Run builds the feature table for job and writes it to job.OutputPath.
func (e *Extractor) Run(ctx context.Context, job Job) (Report, error) {
	if strings.TrimSpace(job.OutputPath) == "" {
		return Report{}, errors.New("extract: output path is required")
	}
	format := job.Format
	if strings.TrimSpace(format) == "" {
		format = e.settings.Format
	}
	if _, err := table.Lookup(format); err != nil {
		return Report{}, err
	}

	res, logger, err := e.build(ctx, job)
	if err != nil {
		return res.Report, err
	}
	res.Report.OutputPath = job.OutputPath
	res.Report.Format = format

	if err := table.WriteFile(ctx, format, job.OutputPath, res.Rows); err != nil {
		logging.ErrorWithContext(logger, "feature table write failed", "table_write_failed",
			logging.String("path", job.OutputPath),
			logging.Error(err),
		)
		return res.Report, fmt.Errorf("write feature table: %w", err)
	}

	logger.Info(fmt.Sprintf("Successfully processed %d rows", len(res.Rows)),
		logging.String(logging.FieldEventType, "extraction_complete"),
		logging.String("path", job.OutputPath),
		logging.String("format", format),
		logging.Bool("degraded", res.Report.Degraded),
		logging.Int("steps", res.Report.Steps),
	)
	return res.Report, nil
}

// Build derives the feature rows for job without writing them.
func (e *Extractor) Build(ctx context.Context, job Job) (Result, error) {
	res, _, err := e.build(ctx, job)
	return res, err
}

func (e *Extractor) build(ctx context.Context, job Job) (Result, *slog.Logger, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	if job.Name != "" {
		ctx = logging.WithSequence(ctx, job.Name)
	}
	logger := logging.WithContext(ctx, e.logger)

	res := Result{Report: Report{RunID: runID, Name: job.Name}}
	if err := checkInputs(job); err != nil {
		return res, logger, err
	}

	parsed, err := ctfile.ParseFile(job.CTPath, ctfile.Options{UppercaseBases: e.settings.UppercaseBases}, logger)
	if err != nil {
		return res, logger, fmt.Errorf("read ct file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return res, logger, err
	}
	structure, err := dotbracket.ExtractFile(job.DotPath)
	if err != nil {
		return res, logger, fmt.Errorf("read dot-bracket file: %w", err)
	}

	bases := parsed.Bases()
	align := dotbracket.Align(structure, len(bases))
	report := &res.Report
	report.Records = len(bases)
	report.Rejected = len(parsed.Rejected)
	report.Structure = align.Status.String()
	e.logAlignment(logger, align, len(structure), len(bases), report)

	tr := features.Traverse(bases, align, features.Options{
		Sentinel:      e.settings.Sentinel,
		StemEndMargin: e.settings.StemEndMargin,
	})
	rows, err := table.Assemble(bases, features.StrandNeighbors(bases, e.settings.Sentinel), tr)
	if err != nil {
		return res, logger, err
	}
	res.Rows = rows

	report.Steps = tr.Steps
	report.StemPairs = len(tr.Pairs)
	report.Unresolved = tr.Unresolved()
	if len(bases) == 0 {
		report.Issue = ErrNoRecords
		report.Notes = append(report.Notes, ErrNoRecords.Error())
		logging.WarnWithContext(logger, "nothing to extract", "ct_empty",
			logging.String("path", job.CTPath),
			logging.Int("rejected", report.Rejected),
			logging.String(logging.FieldImpact, "header-only feature table"),
		)
	}
	if report.Rejected > 0 {
		report.Notes = append(report.Notes, fmt.Sprintf("%d malformed ct lines skipped", report.Rejected))
	}
	report.Degraded = len(bases) == 0 || !tr.Ran || report.Unresolved > 0
	report.Duration = time.Since(start)

	logger.Debug("traversal finished",
		logging.Int("records", report.Records),
		logging.Int("steps", tr.Steps),
		logging.Int("stem_pairs", report.StemPairs),
		logging.Int("unresolved", report.Unresolved),
	)
	return res, logger, nil
}

func (e *Extractor) logAlignment(logger *slog.Logger, align dotbracket.Alignment, structureLen, records int, report *Report) {
	switch align.Status {
	case dotbracket.Missing:
		if records == 0 {
			return
		}
		report.Notes = append(report.Notes, "no dot-bracket structure found")
		logging.WarnWithContext(logger, "dot-bracket structure missing", "structure_missing",
			logging.String(logging.FieldImpact, "roles and cross features left at defaults"),
			logging.String(logging.FieldErrorHint, "check the converter output for a line of ( ) . symbols"),
		)
	case dotbracket.TooShort:
		report.Notes = append(report.Notes, fmt.Sprintf("structure has %d symbols for %d records", structureLen, records))
		logging.WarnWithContext(logger, "dot-bracket structure shorter than ct records", "structure_too_short",
			logging.Int("symbols", structureLen),
			logging.Int("records", records),
			logging.String(logging.FieldImpact, "roles and cross features left at defaults"),
		)
	case dotbracket.Truncated:
		logger.Debug("dot-bracket structure truncated",
			logging.Int("symbols", structureLen),
			logging.Int("records", records),
		)
	}
}

// checkInputs stats both input files so a missing file is reported before
// any parsing starts.
func checkInputs(job Job) error {
	for _, in := range []struct{ label, path string }{
		{"ct file", job.CTPath},
		{"dot-bracket file", job.DotPath},
	} {
		if strings.TrimSpace(in.path) == "" {
			return fmt.Errorf("%s path is required", in.label)
		}
		info, err := os.Stat(in.path)
		if err != nil {
			return fmt.Errorf("%s %s: %w", in.label, in.path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s %s is a directory", in.label, in.path)
		}
	}
	return nil
}
