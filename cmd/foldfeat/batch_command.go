package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"foldfeat/internal/batch"
	"foldfeat/internal/config"
	"foldfeat/internal/extract"
	"foldfeat/internal/logging"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var manifest string
	var dir string
	var outDir string
	var format string
	var workers int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract features for many sequences concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (manifest == "") == (dir == "") {
				return errors.New("exactly one of --manifest or --dir is required")
			}
			cfg, logger, extractor, err := ctx.extractor(cmd)
			if err != nil {
				return err
			}

			var jobs []extract.Job
			if manifest != "" {
				jobs, err = batch.LoadManifest(manifest)
				if err != nil {
					return err
				}
			} else {
				var missing []string
				jobs, missing, err = batch.Discover(dir)
				if err != nil {
					return err
				}
				for _, path := range missing {
					logging.WarnWithContext(logger, "ct file has no companion dot file", "batch_dot_missing",
						logging.String("path", path),
						logging.String(logging.FieldImpact, "sequence skipped"),
					)
				}
				if len(jobs) == 0 {
					return fmt.Errorf("no *.ct files with a matching *.dot file in %s", dir)
				}
			}

			target := cfg.Paths.OutputDir
			if strings.TrimSpace(outDir) != "" {
				if target, err = config.ExpandPath(outDir); err != nil {
					return err
				}
			}
			if format == "" {
				format = cfg.Output.Format
			}
			if err := batch.AssignOutputs(jobs, target, format); err != nil {
				return err
			}
			if workers <= 0 {
				workers = cfg.Batch.Workers
			}

			summary, runErr := batch.NewRunner(extractor, workers, logger).Run(cmd.Context(), jobs)
			if jsonOut {
				if err := writeJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				printSummary(cmd, summary)
			}
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "TOML manifest listing [[job]] entries")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of <name>.ct and <name>.dot pairs")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default: paths.output_dir)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (csv, tsv, sqlite, pretty)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent jobs (default: batch.workers)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the batch summary as JSON")
	return cmd
}

func printSummary(cmd *cobra.Command, summary batch.Summary) {
	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		status := "ok"
		switch {
		case res.Failed():
			status = "failed: " + res.Error
		case res.Report.Degraded:
			status = "degraded"
		}
		rows = append(rows, []string{
			res.Job.Name,
			strconv.Itoa(res.Report.Records),
			res.Report.Structure,
			status,
			res.Job.OutputPath,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{"Sequence", "Rows", "Structure", "Status", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "%d succeeded (%d degraded), %d failed\n", summary.Succeeded, summary.Degraded, summary.Failed)
}
