package table

import (
	"io"
	"strconv"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func init() {
	Register(Format{Name: "pretty", Extension: ".txt", Stream: writePretty})
}

// Render returns rows as a rounded text table with a leading position
// column.
func Render(rows []Row) string {
	tw := prettytable.NewWriter()
	style := prettytable.StyleRounded
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)

	header := make(prettytable.Row, 0, len(Columns)+1)
	header = append(header, "#")
	for _, col := range Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for i, row := range rows {
		r := make(prettytable.Row, 0, len(Columns)+1)
		r = append(r, strconv.Itoa(i+1))
		for _, v := range row.Values() {
			r = append(r, v)
		}
		tw.AppendRow(r)
	}

	configs := make([]prettytable.ColumnConfig, 0, len(Columns)+1)
	configs = append(configs, prettytable.ColumnConfig{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	for i := range Columns {
		configs = append(configs, prettytable.ColumnConfig{Number: i + 2, Align: text.AlignCenter, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func writePretty(w io.Writer, rows []Row) error {
	if _, err := io.WriteString(w, Render(rows)); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
