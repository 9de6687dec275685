package db

import _ "embed"

//go:embed schema.sql
var Schema string

type ScrapeRun struct {
	ID         int64
	Source     string
	SourceUrl  string
	ScrapedAt  string
	OutputPath string
	RowCount   int64
}

type ScrapeRow struct {
	RunID int64
	Idx   int64
	Data  string
}
