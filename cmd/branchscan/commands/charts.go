package commands

import (
	"fmt"
	"os"

	"branchscan/internal/report"

	"github.com/spf13/cobra"
)

var (
	chartsDataDir    *string
	chartsDir        *string
	chartsNoWorkbook *bool
)

func init() {
	chartsDataDir = chartsCmd.Flags().String("data-dir", "", "The directory holding kfc.csv, mcdonalds.csv and shaurma.csv.")
	chartsDir = chartsCmd.Flags().String("charts-dir", "", "The directory to render charts into.")
	chartsNoWorkbook = chartsCmd.Flags().Bool("no-workbook", false, "Skip writing summary.xlsx.")
	rootCmd.AddCommand(chartsCmd)
}

var chartsCmd = &cobra.Command{
	Use:   "charts [--data-dir <dir>] [--charts-dir <dir>]",
	Short: "Renders descriptive charts from the scraped tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := report.Options{
			DataDir:   config.Charts.DataDir,
			ChartsDir: config.Charts.ChartsDir,
			Workbook:  !*chartsNoWorkbook,
		}
		if *chartsDataDir != "" {
			opts.DataDir = *chartsDataDir
		}
		if *chartsDir != "" {
			opts.ChartsDir = *chartsDir
		}

		result, err := report.NewGenerator(tel).Generate(cmd.Context(), opts)
		if err != nil {
			return err
		}

		report.WriteSummary(os.Stdout, result.Datasets)
		for _, path := range result.Charts {
			fmt.Printf("Saved chart to %s\n", path)
		}
		if result.Workbook != "" {
			fmt.Printf("Saved workbook to %s\n", result.Workbook)
		}
		return nil
	},
}
