package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// sheet names are capped at 31 characters
func sheetName(ds Dataset) string {
	name := ds.Name
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func writeSheet(f *excelize.File, ds Dataset) error {
	sheet := sheetName(ds)

	header := []any{ds.XLabel}
	if ds.XLabel == "" {
		header[0] = "Category"
	}
	for _, s := range ds.Series {
		header = append(header, s.Label)
	}
	err := f.SetSheetRow(sheet, "A1", &header)
	if err != nil {
		return err
	}

	for i, category := range ds.Categories {
		row := []any{category}
		for _, s := range ds.Series {
			row = append(row, s.Values[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return err
		}
	}

	if len(ds.Categories) == 0 {
		return nil
	}

	lastRow := len(ds.Categories) + 1
	chart := &excelize.Chart{
		Type:   excelize.Col,
		Title:  []excelize.RichTextRun{{Text: ds.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if ds.Stacked {
		chart.Type = excelize.ColStacked
	}
	for k := range ds.Series {
		column, err := excelize.ColumnNumberToName(k + 2)
		if err != nil {
			return err
		}
		chart.Series = append(chart.Series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, column),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, column, column, lastRow),
		})
	}

	column, err := excelize.ColumnNumberToName(len(ds.Series) + 3)
	if err != nil {
		return err
	}
	return f.AddChart(sheet, column+"2", chart)
}

// WriteWorkbook saves one sheet per dataset to path, each sheet holds the
// dataset's table and a column chart of it.
func WriteWorkbook(path string, datasets []Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, ds := range datasets {
		if i == 0 {
			err := f.SetSheetName("Sheet1", sheetName(ds))
			if err != nil {
				return err
			}
		} else {
			_, err := f.NewSheet(sheetName(ds))
			if err != nil {
				return err
			}
		}
		err := writeSheet(f, ds)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", ds.Name, err)
		}
	}

	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	return f.SaveAs(path)
}
