package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"foldfeat/internal/config"
	"foldfeat/internal/extract"
	"foldfeat/internal/preflight"
	"foldfeat/internal/table"
	"foldfeat/internal/textutil"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var output string
	var format string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "extract <ct-file> <dot-file>",
		Short: "Write the feature table for one sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, extractor, err := ctx.extractor(cmd)
			if err != nil {
				return err
			}
			if err := checkInputs(args[0], args[1]); err != nil {
				return err
			}

			format = strings.TrimSpace(format)
			if format == "" {
				format = cfg.Output.Format
			}
			target, err := resolveOutput(cfg, output, format)
			if err != nil {
				return err
			}

			report, err := extractor.Run(cmd.Context(), extract.Job{
				Name:       textutil.SequenceName(args[0]),
				CTPath:     args[0],
				DotPath:    args[1],
				OutputPath: target,
				Format:     format,
			})
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, report)
			}
			printReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: paths.output_dir/paths.output_file)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (csv, tsv, sqlite, pretty)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run report as JSON")
	return cmd
}

// checkInputs turns the first failed input check into an error.
func checkInputs(ctPath, dotPath string) error {
	if failed, ok := preflight.FirstFailure(preflight.CheckInputs(ctPath, dotPath)); ok {
		return fmt.Errorf("%s: %s", failed.Name, failed.Detail)
	}
	return nil
}

// resolveOutput picks the output path. Without an explicit path the
// configured file name is used with its extension swapped to match format,
// whether the format came from the flag or from output.format.
func resolveOutput(cfg *config.Config, output, format string) (string, error) {
	f, err := table.Lookup(format)
	if err != nil {
		return "", err
	}
	if output = strings.TrimSpace(output); output != "" {
		return config.ExpandPath(output)
	}
	path := cfg.OutputPath()
	if ext := filepath.Ext(path); ext != f.Extension {
		path = strings.TrimSuffix(path, ext) + f.Extension
	}
	return path, nil
}

func printReport(cmd *cobra.Command, report extract.Report) {
	rows := [][]string{
		{"Output", report.OutputPath},
		{"Format", report.Format},
		{"Rows", strconv.Itoa(report.Records)},
		{"Rejected lines", strconv.Itoa(report.Rejected)},
		{"Structure", report.Structure},
		{"Steps", strconv.Itoa(report.Steps)},
		{"Stem pairs", strconv.Itoa(report.StemPairs)},
		{"Unresolved", strconv.Itoa(report.Unresolved)},
		{"Degraded", yesNo(report.Degraded)},
	}
	for _, note := range report.Notes {
		rows = append(rows, []string{"Note", note})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, nil))
}
