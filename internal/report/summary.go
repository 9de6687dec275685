package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteSummary renders every dataset as a table.
func WriteSummary(w io.Writer, datasets []Dataset) {
	for _, ds := range datasets {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(ds.Title)

		header := table.Row{ds.XLabel}
		if ds.XLabel == "" {
			header[0] = "Category"
		}
		for _, s := range ds.Series {
			header = append(header, s.Label)
		}
		t.AppendHeader(header)

		for i, category := range ds.Categories {
			row := table.Row{category}
			for _, s := range ds.Series {
				row = append(row, strconv.FormatFloat(s.Values[i], 'f', -1, 64))
			}
			t.AppendRow(row)
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	}
}
