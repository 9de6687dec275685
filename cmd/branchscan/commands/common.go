package commands

import (
	"context"
	"fmt"
	"os"

	"branchscan/internal/archive"
	"branchscan/internal/location"
)

const (
	msgNoLocationData = "Input file did not contain usable location data."
	msgNoBranchData   = "Input file did not contain usable branch data."
	msgNoNetworkData  = "Failed to find branch data. Try inspecting API calls in the browser."
)

const report_commands_archive_run = "commands.archive-run"

// noDataError ends a command with exit code 1 after printing message.
type noDataError struct {
	message string
}

func (e noDataError) Error() string {
	return e.message
}

type output struct {
	source    string
	sourceURL string
	path      string
	// nil for a table made of every field any record has
	fields []string
}

func readInput(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(content), nil
}

// save drops the records without a name or an address, stamps the rest and
// writes them out. A run with nothing left fails with noData. The CSV is the
// result of a run, failing to archive it only warns.
func save(ctx context.Context, out output, records []location.Record, noData string) error {
	records = location.Identified(records)
	if len(records) == 0 {
		return noDataError{message: noData}
	}

	scrapedAt := clock.Now()
	location.Stamp(records, out.sourceURL, scrapedAt)

	table := location.NewUnionTable(records)
	if out.fields != nil {
		table = location.NewFixedTable(out.fields, records)
	}
	err := location.WriteCSVFile(out.path, table)
	if err != nil {
		return fmt.Errorf("write %s: %w", out.path, err)
	}
	tel.ReportCount(fmt.Sprintf("%s.rows-saved", out.source), int64(len(records)))
	fmt.Printf("Saved %d rows to %s\n", len(records), out.path)

	if *dbTarget != "" {
		err := recordRun(ctx, archive.Run{
			Source:     out.source,
			SourceURL:  out.sourceURL,
			ScrapedAt:  scrapedAt,
			OutputPath: out.path,
		}, records)
		if err != nil {
			tel.ReportWarning(report_commands_archive_run, err, *dbTarget)
		}
	}
	return nil
}

func recordRun(ctx context.Context, run archive.Run, records []location.Record) error {
	store, err := archive.Open(ctx, *dbTarget)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(ctx, run, records)
	if err != nil {
		return fmt.Errorf("archive run: %w", err)
	}
	tel.ReportDebug("archived run", "id", id, "db", *dbTarget)
	return nil
}
