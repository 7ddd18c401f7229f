package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"foldfeat/internal/extract"
	"foldfeat/internal/table"
	"foldfeat/internal/textutil"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <ct-file> <dot-file>",
		Short: "Preview the feature table without writing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, extractor, err := ctx.extractor(cmd)
			if err != nil {
				return err
			}
			if err := checkInputs(args[0], args[1]); err != nil {
				return err
			}

			res, err := extractor.Build(cmd.Context(), extract.Job{
				Name:    textutil.SequenceName(args[0]),
				CTPath:  args[0],
				DotPath: args[1],
			})
			if err != nil {
				return err
			}

			rows := res.Rows
			if limit > 0 && len(rows) > limit {
				rows = rows[:limit]
			}
			out := cmd.OutOrStdout()
			if err := table.Encode("pretty", out, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d of %d rows, structure %s, %d unresolved\n",
				len(rows), len(res.Rows), res.Report.Structure, res.Report.Unresolved)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n rows (0 shows all)")
	return cmd
}
