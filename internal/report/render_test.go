package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"branchscan/internal/telemetry"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestHexColor(t *testing.T) {
	c, err := hexColor("#d62828")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, uint8(0xd6), c.R)
	require.Equal(t, uint8(0x28), c.G)
	require.Equal(t, uint8(0x28), c.B)
	require.Equal(t, uint8(0xff), c.A)

	_, err = hexColor("red")
	require.Error(t, err)
}

func TestMaxValue(t *testing.T) {
	ds := Dataset{
		Categories: []string{"a", "b"},
		Series: []Series{
			{Values: []float64{1, 4}},
			{Values: []float64{3, 1}},
		},
	}
	require.Equal(t, 4.0, ds.maxValue())

	ds.Stacked = true
	require.Equal(t, 5.0, ds.maxValue())
}

func TestPlotRejectsMismatchedSeries(t *testing.T) {
	ds := Dataset{
		Name:       "broken",
		Categories: []string{"a", "b"},
		Series:     []Series{{Label: "x", Values: []float64{1}}},
	}
	_, err := ds.Plot()
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	chartsDir := filepath.Join(t.TempDir(), "charts")
	rec := telemetry.NewRecorder()

	result, err := NewGenerator(rec).Generate(context.Background(), Options{
		DataDir:   "testdata",
		ChartsDir: chartsDir,
		Workbook:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"location_counts_by_brand.png",
		"late_night_coverage_by_brand.png",
		"mcdonalds_services_coverage.png",
		"kfc_opening_hours.png",
		"regional_distribution.png",
	}
	require.Len(t, result.Charts, len(expected))
	for i, name := range expected {
		require.Equal(t, filepath.Join(chartsDir, name), result.Charts[i])
		info, err := os.Stat(result.Charts[i])
		if err != nil {
			t.Fatal(err)
		}
		require.Greater(t, info.Size(), int64(0))
	}

	count, ok := rec.Count("report: " + report_generator_charts)
	require.True(t, ok)
	require.Equal(t, int64(5), count)

	require.Equal(t, filepath.Join(chartsDir, WorkbookName), result.Workbook)
	f, err := excelize.OpenFile(result.Workbook)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	require.Equal(t, []string{
		"location_counts_by_brand",
		"late_night_coverage_by_brand",
		"mcdonalds_services_coverage",
		"kfc_opening_hours",
		"regional_distribution",
	}, f.GetSheetList())

	cell, err := f.GetCellValue("kfc_opening_hours", "A2")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "00:00", cell)
}

func TestGenerateMissingData(t *testing.T) {
	_, err := NewGenerator(telemetry.NewRecorder()).Generate(context.Background(), Options{
		DataDir:   t.TempDir(),
		ChartsDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, Datasets(loadTestSources(t)))

	out := buf.String()
	require.Contains(t, out, "Location Count by Brand")
	require.Contains(t, out, "Regional Distribution by Brand")
	require.Contains(t, out, "Sumqayıt")
	require.Contains(t, out, "Drive-thru")
}
