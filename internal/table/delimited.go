package table

import (
	"encoding/csv"
	"io"
)

func init() {
	Register(Format{Name: "csv", Extension: ".csv", Stream: delimited(',')})
	Register(Format{Name: "tsv", Extension: ".tsv", Stream: delimited('\t')})
}

func delimited(sep rune) func(io.Writer, []Row) error {
	return func(w io.Writer, rows []Row) error {
		cw := csv.NewWriter(w)
		cw.Comma = sep
		if err := cw.Write(Columns); err != nil {
			return err
		}
		for _, row := range rows {
			if err := cw.Write(row.Values()); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
}
