package db

import (
	"context"
)

const createRun = `
insert into scrape_run(source, source_url, scraped_at, output_path, row_count)
values (?, ?, ?, ?, ?)
returning id
`

type CreateRunParams struct {
	Source     string
	SourceUrl  string
	ScrapedAt  string
	OutputPath string
	RowCount   int64
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createRun,
		arg.Source,
		arg.SourceUrl,
		arg.ScrapedAt,
		arg.OutputPath,
		arg.RowCount,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createRow = `
insert into scrape_row(run_id, idx, data)
values (?, ?, ?)
`

type CreateRowParams struct {
	RunID int64
	Idx   int64
	Data  string
}

func (q *Queries) CreateRow(ctx context.Context, arg CreateRowParams) error {
	_, err := q.db.ExecContext(ctx, createRow, arg.RunID, arg.Idx, arg.Data)
	return err
}

const listRuns = `
select id, source, source_url, scraped_at, output_path, row_count
from scrape_run
order by id desc
limit ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]ScrapeRun, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeRun
	for rows.Next() {
		var i ScrapeRun
		if err := rows.Scan(
			&i.ID,
			&i.Source,
			&i.SourceUrl,
			&i.ScrapedAt,
			&i.OutputPath,
			&i.RowCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRunsBySource = `
select id, source, source_url, scraped_at, output_path, row_count
from scrape_run
where source = ?
order by id desc
limit ?
`

type ListRunsBySourceParams struct {
	Source string
	Limit  int64
}

func (q *Queries) ListRunsBySource(ctx context.Context, arg ListRunsBySourceParams) ([]ScrapeRun, error) {
	rows, err := q.db.QueryContext(ctx, listRunsBySource, arg.Source, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeRun
	for rows.Next() {
		var i ScrapeRun
		if err := rows.Scan(
			&i.ID,
			&i.Source,
			&i.SourceUrl,
			&i.ScrapedAt,
			&i.OutputPath,
			&i.RowCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRunRows = `
select run_id, idx, data
from scrape_row
where run_id = ?
order by idx
`

func (q *Queries) GetRunRows(ctx context.Context, runID int64) ([]ScrapeRow, error) {
	rows, err := q.db.QueryContext(ctx, getRunRows, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ScrapeRow
	for rows.Next() {
		var i ScrapeRow
		if err := rows.Scan(&i.RunID, &i.Idx, &i.Data); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
