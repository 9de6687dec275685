package commands

import (
	"fmt"
	"os"

	"branchscan/internal/archive"
	"branchscan/internal/chrono"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	runsLimit  *int
	runsSource *string
)

func init() {
	runsLimit = runsCmd.Flags().Int("limit", 20, "The maximum number of runs to list.")
	runsSource = runsCmd.Flags().String("source", "", "Only list runs of this source (kfc, mcdonalds, shaurma).")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs --db <archive> [--limit N]",
	Short: "Lists the scrape runs recorded in an archive.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if *dbTarget == "" {
			return fmt.Errorf("no archive given, pass --db or set database in the config")
		}

		store, err := archive.Open(cmd.Context(), *dbTarget)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), *runsSource, *runsLimit)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Id", "Source", "Scraped At", "Rows", "Output", "Source URL"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.ID,
				run.Source,
				chrono.ISO(run.ScrapedAt),
				run.RowCount,
				run.OutputPath,
				run.SourceURL,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
