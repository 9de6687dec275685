package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"branchscan/internal/chrono"
	"branchscan/internal/db"
	"branchscan/internal/location"
	configlibsql "branchscan/lib/configutil/libsql"
)

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Open connects to a local sqlite file or a remote libsql url and makes sure
// the archive tables exist.
func Open(ctx context.Context, target string) (Store, error) {
	database, err := configlibsql.FromTarget(target).OpenDB()
	if err != nil {
		return Store{}, fmt.Errorf("open archive %s: %w", target, err)
	}
	_, err = database.ExecContext(ctx, db.Schema)
	if err != nil {
		database.Close()
		return Store{}, fmt.Errorf("create archive schema: %w", err)
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Run struct {
	ID         int64
	Source     string
	SourceURL  string
	ScrapedAt  time.Time
	OutputPath string
	RowCount   int
}

// SaveRun stores a finished scrape and every row it wrote, it returns the id
// of the new run.
func (s Store) SaveRun(ctx context.Context, run Run, records []location.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	id, err := txqry.CreateRun(ctx, db.CreateRunParams{
		Source:     run.Source,
		SourceUrl:  run.SourceURL,
		ScrapedAt:  chrono.ISO(run.ScrapedAt),
		OutputPath: run.OutputPath,
		RowCount:   int64(len(records)),
	})
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}

	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return 0, err
		}
		err = txqry.CreateRow(ctx, db.CreateRowParams{
			RunID: id,
			Idx:   int64(i),
			Data:  string(data),
		})
		if err != nil {
			return 0, fmt.Errorf("create row %d: %w", i, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func runFromRow(row db.ScrapeRun) (Run, error) {
	scrapedAt, err := chrono.ParseISO(row.ScrapedAt)
	if err != nil {
		return Run{}, fmt.Errorf("run %d: %w", row.ID, err)
	}
	return Run{
		ID:         row.ID,
		Source:     row.Source,
		SourceURL:  row.SourceUrl,
		ScrapedAt:  scrapedAt.UTC(),
		OutputPath: row.OutputPath,
		RowCount:   int(row.RowCount),
	}, nil
}

// ListRuns returns the latest runs first. An empty source lists the runs of
// every source.
func (s Store) ListRuns(ctx context.Context, source string, limit int) ([]Run, error) {
	var rows []db.ScrapeRun
	var err error
	if source == "" {
		rows, err = s.qry.ListRuns(ctx, int64(limit))
	} else {
		rows, err = s.qry.ListRunsBySource(ctx, db.ListRunsBySourceParams{
			Source: source,
			Limit:  int64(limit),
		})
	}
	if err != nil {
		return nil, err
	}

	runs := make([]Run, len(rows))
	for i, row := range rows {
		runs[i], err = runFromRow(row)
		if err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Rows returns the records stored for a run, in the order they were written.
func (s Store) Rows(ctx context.Context, runID int64) ([]location.Record, error) {
	rows, err := s.qry.GetRunRows(ctx, runID)
	if err != nil {
		return nil, err
	}

	records := make([]location.Record, len(rows))
	for i, row := range rows {
		err := json.Unmarshal([]byte(row.Data), &records[i])
		if err != nil {
			return nil, fmt.Errorf("row %d of run %d: %w", row.Idx, runID, err)
		}
	}
	return records, nil
}
