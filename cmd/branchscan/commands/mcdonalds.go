package commands

import (
	"branchscan/internal/scrapers/mcdonalds"

	"github.com/spf13/cobra"
)

var (
	mcdonaldsInput     *string
	mcdonaldsOutput    *string
	mcdonaldsSourceURL *string
)

func init() {
	mcdonaldsInput = mcdonaldsCmd.Flags().String("input", "", "The saved restaurants page.")
	mcdonaldsOutput = mcdonaldsCmd.Flags().String("output", "data/mcdonalds.csv", "The CSV file to write.")
	mcdonaldsSourceURL = mcdonaldsCmd.Flags().String("source-url", "", "The source_url recorded on every row, defaults to the input path.")
	mcdonaldsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(mcdonaldsCmd)
}

var mcdonaldsCmd = &cobra.Command{
	Use:   "mcdonalds --input <saved page> [--output <path/to/mcdonalds.csv>]",
	Short: "Parses McDonald's Azerbaijan locations out of a saved page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readInput(*mcdonaldsInput)
		if err != nil {
			return err
		}
		rows := mcdonalds.NewParser(tel).Parse(payload)

		sourceURL := *mcdonaldsSourceURL
		if sourceURL == "" {
			sourceURL = *mcdonaldsInput
		}
		return save(cmd.Context(), output{
			source:    "mcdonalds",
			sourceURL: sourceURL,
			path:      *mcdonaldsOutput,
			fields:    mcdonalds.Fields,
		}, rows, msgNoLocationData)
	},
}
