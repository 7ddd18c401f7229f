package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"foldfeat/internal/extract"
	"foldfeat/internal/logging"
	"foldfeat/internal/table"
	"foldfeat/internal/textutil"
)

// ErrDuplicateOutput reports two jobs writing the same output path.
var ErrDuplicateOutput = errors.New("duplicate output path in batch")

// JobResult is the outcome of one job.
type JobResult struct {
	Job    extract.Job    `json:"job"`
	Report extract.Report `json:"report"`
	Error  string         `json:"error,omitempty"`
}

// Failed reports whether the job returned an error.
func (r JobResult) Failed() bool {
	return r.Error != ""
}

// Summary aggregates a batch run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Degraded  int           `json:"degraded"`
	Failed    int           `json:"failed"`
	Results   []JobResult   `json:"results"`
	Duration  time.Duration `json:"duration_ns"`
}

// Runner executes jobs with bounded concurrency.
type Runner struct {
	extractor *extract.Extractor
	workers   int
	logger    *slog.Logger
}

// NewRunner returns a Runner using at most workers concurrent jobs.
func NewRunner(extractor *extract.Extractor, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		extractor: extractor,
		workers:   workers,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
}

// AssignOutputs fills empty output paths with outDir/<token><ext>, where the
// token is the sanitized job name and ext follows the job's format.
func AssignOutputs(jobs []extract.Job, outDir, format string) error {
	for i := range jobs {
		if jobs[i].Format == "" {
			jobs[i].Format = format
		}
		if jobs[i].OutputPath != "" {
			continue
		}
		f, err := table.Lookup(jobs[i].Format)
		if err != nil {
			return fmt.Errorf("job %s: %w", jobs[i].Name, err)
		}
		jobs[i].OutputPath = filepath.Join(outDir, textutil.SanitizeToken(jobs[i].Name)+f.Extension)
	}
	return CheckOutputs(jobs)
}

// CheckOutputs returns ErrDuplicateOutput when two jobs share an output path.
func CheckOutputs(jobs []extract.Job) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		key := filepath.Clean(job.OutputPath)
		if abs, err := filepath.Abs(key); err == nil {
			key = abs
		}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s (jobs %q and %q)", ErrDuplicateOutput, job.OutputPath, other, job.Name)
		}
		seen[key] = job.Name
	}
	return nil
}

// Run executes jobs and returns their summary. Only plan errors and context
// cancellation are returned; per-job failures live in the summary.
func (r *Runner) Run(ctx context.Context, jobs []extract.Job) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString(), Total: len(jobs)}
	for _, job := range jobs {
		if strings.TrimSpace(job.OutputPath) == "" {
			return summary, fmt.Errorf("job %s: output path is required", job.Name)
		}
	}
	if err := CheckOutputs(jobs); err != nil {
		return summary, err
	}

	logger := logging.WithContext(logging.WithRunID(ctx, summary.RunID), r.logger)
	logger.Info("batch started", logging.Int("jobs", len(jobs)), logging.Int("workers", r.workers))

	results := make([]JobResult, len(jobs))
	for i, job := range jobs {
		results[i] = JobResult{Job: job, Error: "not run"}
	}
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := r.extractor.Run(gctx, job)
			result := JobResult{Job: job, Report: report}
			if err != nil {
				result.Error = err.Error()
				logging.WarnWithContext(logger, "batch job failed", "batch_job_failed",
					logging.String(logging.FieldSequence, job.Name),
					logging.Error(err),
					logging.String(logging.FieldImpact, "no feature table for this sequence"),
				)
			}
			results[i] = result
			logger.Debug("batch job finished",
				logging.String(logging.FieldSequence, job.Name),
				logging.Int("completed", int(done.Add(1))),
				logging.Int("total", len(jobs)),
			)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	waitErr := g.Wait()

	for _, res := range results {
		switch {
		case res.Failed():
			summary.Failed++
		case res.Report.Degraded:
			summary.Degraded++
			summary.Succeeded++
		default:
			summary.Succeeded++
		}
	}
	summary.Results = results
	summary.Duration = time.Since(start)

	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("degraded", summary.Degraded),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration", summary.Duration),
	)
	if waitErr != nil {
		return summary, fmt.Errorf("batch interrupted: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("batch interrupted: %w", err)
	}
	return summary, nil
}
