package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"branchscan/internal/archive"
	"branchscan/internal/chrono"
	"branchscan/internal/location"
	"branchscan/internal/scrapers/mcdonalds"
	"branchscan/internal/scrapers/shaurma"
	"branchscan/internal/telemetry"

	"github.com/stretchr/testify/require"
)

const fixtures = "../../../internal/scrapers"

var testTime = time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

// every flag is passed explicitly since cobra keeps flag values between runs
func execute(t testing.TB, args ...string) error {
	return executeWithConfig(t, filepath.Join(t.TempDir(), "missing.json5"), args...)
}

func executeWithConfig(t testing.TB, configFile string, args ...string) error {
	clock = chrono.FixedTime{At: testTime}
	rootCmd.SetArgs(append(args, "--config", configFile))
	return rootCmd.ExecuteContext(context.Background())
}

// writeConfig points every kfc url at serverURL.
func writeConfig(t testing.TB, serverURL string) string {
	path := filepath.Join(t.TempDir(), "branchscan.json5")
	content := fmt.Sprintf(`{
		// no limiter in tests
		requests_per_second: 0,
		timeout_seconds: 5,
		kfc: {
			branches_url: "%[1]s/az/branches",
			site_url: "%[1]s",
			api_host: "%[1]s",
		},
	}`, serverURL)
	err := os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func readTable(t testing.TB, path string) location.Table {
	table, err := location.ReadCSVFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestMcDonaldsCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "data", "mcdonalds.csv")
	db := filepath.Join(dir, "archive.db")
	input := filepath.Join(fixtures, "mcdonalds", "testdata", "restaurants.html")

	err := execute(t, "mcdonalds",
		"--input", input,
		"--output", output,
		"--source-url=",
		"--db", db,
	)
	if err != nil {
		t.Fatal(err)
	}

	table := readTable(t, output)
	require.Equal(t, mcdonalds.Fields, table.Fields)
	require.Equal(t, 3, table.Len())
	for _, r := range table.Records {
		require.Equal(t, input, r[location.FieldSourceURL])
		require.Equal(t, "2026-10-17T09:00:00.000000+00:00", r[location.FieldScrapedAt])
	}

	ctx := context.Background()
	store, err := archive.Open(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx, "mcdonalds", 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, runs, 1)
	require.Equal(t, 3, runs[0].RowCount)
	require.Equal(t, output, runs[0].OutputPath)

	err = execute(t, "runs", "--db", db, "--limit", "5", "--source=")
	require.NoError(t, err)
}

func TestShaurmaCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "shaurma.csv")

	err := execute(t, "shaurma",
		"--input", filepath.Join(fixtures, "shaurma", "testdata", "branches.html"),
		"--output", output,
		"--source-url", "https://shaurma.az/filiallar",
		"--db=",
	)
	if err != nil {
		t.Fatal(err)
	}

	table := readTable(t, output)
	require.Equal(t, shaurma.Fields, table.Fields)
	require.Equal(t, 3, table.Len())
	require.Equal(t, "https://shaurma.az/filiallar", table.Records[0][location.FieldSourceURL])
}

func TestShaurmaCommandNoData(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "empty.html")
	err := os.WriteFile(input, []byte("<html><body>Tezliklə</body></html>"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "shaurma.csv")

	err = execute(t, "shaurma", "--input", input, "--output", output, "--source-url=", "--db=")

	var noData noDataError
	require.True(t, errors.As(err, &noData))
	require.Equal(t, msgNoLocationData, noData.message)
	require.NoFileExists(t, output)
}

func TestKFCCommandInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "kfc.csv")
	input := filepath.Join(fixtures, "kfc", "testdata", "branches.json")

	err := execute(t, "kfc", "--input", input, "--output", output, "--source-url=", "--insecure=false", "--db=")
	if err != nil {
		t.Fatal(err)
	}

	table := readTable(t, output)
	require.Equal(t, 3, table.Len())
	require.Contains(t, table.Fields, "city.name")
	require.Contains(t, table.Fields, "openingHour")
	require.Equal(t, input, table.Records[0][location.FieldSourceURL])

	err = execute(t, "kfc",
		"--input", filepath.Join(fixtures, "kfc", "testdata", "branches_shell.html"),
		"--output", output,
		"--source-url=",
		"--db=",
	)
	var noData noDataError
	require.True(t, errors.As(err, &noData))
	require.Equal(t, msgNoBranchData, noData.message)
}

func TestChartsCommand(t *testing.T) {
	chartsOut := t.TempDir()

	err := execute(t, "charts",
		"--data-dir", "../../../internal/report/testdata",
		"--charts-dir", chartsOut,
		"--no-workbook",
		"--db=",
	)
	if err != nil {
		t.Fatal(err)
	}
	require.FileExists(t, filepath.Join(chartsOut, "regional_distribution.png"))
	require.NoFileExists(t, filepath.Join(chartsOut, "summary.xlsx"))
}

func TestRunsCommandNeedsArchive(t *testing.T) {
	err := execute(t, "runs", "--db=")
	require.Error(t, err)
}

func TestKFCCommandNetworkNoData(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	output := filepath.Join(t.TempDir(), "kfc.csv")
	err := executeWithConfig(t, writeConfig(t, server.URL), "kfc",
		"--input=",
		"--output", output,
		"--source-url=",
		"--insecure=false",
		"--db=",
		"--dump-http=",
	)

	var noData noDataError
	require.True(t, errors.As(err, &noData))
	require.Equal(t, msgNoNetworkData, noData.message)
	require.Greater(t, requests.Load(), int32(1))
	require.NoFileExists(t, output)
}

func TestRunExitCode(t *testing.T) {
	shutdowns := 0
	previous := shutdownTelemetry
	shutdownTelemetry = func() { shutdowns++ }
	t.Cleanup(func() { shutdownTelemetry = previous })

	dir := t.TempDir()
	input := filepath.Join(dir, "empty.html")
	err := os.WriteFile(input, []byte("<html></html>"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	clock = chrono.FixedTime{At: testTime}
	rootCmd.SetArgs([]string{
		"shaurma",
		"--input", input,
		"--output", filepath.Join(dir, "shaurma.csv"),
		"--source-url=",
		"--db=",
		"--config", filepath.Join(dir, "missing.json5"),
	})

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Equal(t, msgNoLocationData+"\n", stdout.String())
	require.Empty(t, stderr.String())
	require.Equal(t, 1, shutdowns)

	rootCmd.SetArgs([]string{"runs", "--db=", "--config", filepath.Join(dir, "missing.json5")})
	code = run(context.Background(), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.NotEmpty(t, stderr.String())
	require.Equal(t, 2, shutdowns)
}

func TestSaveKeepsCSVWhenArchiveFails(t *testing.T) {
	rec := telemetry.NewRecorder()
	previous := tel
	tel = rec
	t.Cleanup(func() { tel = previous })

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	err := os.WriteFile(blocker, nil, 0644)
	if err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "mcdonalds.csv")

	err = execute(t, "mcdonalds",
		"--input", filepath.Join(fixtures, "mcdonalds", "testdata", "restaurants.html"),
		"--output", output,
		"--source-url=",
		"--db", filepath.Join(blocker, "archive.db"),
	)
	if err != nil {
		t.Fatal(err)
	}
	require.FileExists(t, output)
	var archiveWarnings int
	for _, rep := range rec.Reports("warning") {
		if rep.Id == report_commands_archive_run {
			archiveWarnings++
		}
	}
	require.Equal(t, 1, archiveWarnings)
}
