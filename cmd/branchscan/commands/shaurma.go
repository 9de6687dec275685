package commands

import (
	"branchscan/internal/scrapers/shaurma"

	"github.com/spf13/cobra"
)

var (
	shaurmaInput     *string
	shaurmaOutput    *string
	shaurmaSourceURL *string
)

func init() {
	shaurmaInput = shaurmaCmd.Flags().String("input", "", "The saved branches page.")
	shaurmaOutput = shaurmaCmd.Flags().String("output", "data/shaurma.csv", "The CSV file to write.")
	shaurmaSourceURL = shaurmaCmd.Flags().String("source-url", "", "The source_url recorded on every row, defaults to the input path.")
	shaurmaCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(shaurmaCmd)
}

var shaurmaCmd = &cobra.Command{
	Use:   "shaurma --input <saved page> [--output <path/to/shaurma.csv>]",
	Short: "Parses Shaurma N1 locations out of a saved page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readInput(*shaurmaInput)
		if err != nil {
			return err
		}
		rows := shaurma.Parse(payload)
		tel.ReportDebug("parsed address cards", len(rows))

		sourceURL := *shaurmaSourceURL
		if sourceURL == "" {
			sourceURL = *shaurmaInput
		}
		return save(cmd.Context(), output{
			source:    "shaurma",
			sourceURL: sourceURL,
			path:      *shaurmaOutput,
			fields:    shaurma.Fields,
		}, rows, msgNoLocationData)
	},
}
