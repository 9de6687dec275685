package commands

import (
	"branchscan/internal/scrapers/kfc"

	"github.com/spf13/cobra"
)

var (
	kfcInput     *string
	kfcOutput    *string
	kfcSourceURL *string
	kfcInsecure  *bool
)

func init() {
	kfcInput = kfcCmd.Flags().String("input", "", "Parse a saved HTML or JSON response instead of fetching.")
	kfcOutput = kfcCmd.Flags().String("output", "data/kfc.csv", "The CSV file to write.")
	kfcSourceURL = kfcCmd.Flags().String("source-url", "", "The source_url recorded on every row.")
	kfcInsecure = kfcCmd.Flags().Bool("insecure", false, "Disable TLS certificate verification.")
	rootCmd.AddCommand(kfcCmd)
}

var kfcCmd = &cobra.Command{
	Use:   "kfc [--input <saved response>] [--output <path/to/kfc.csv>]",
	Short: "Scrapes KFC Azerbaijan branches.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if *kfcInput != "" {
			return kfcFromInput(cmd)
		}
		return kfcFromNetwork(cmd)
	},
}

func kfcFromInput(cmd *cobra.Command) error {
	content, err := readInput(*kfcInput)
	if err != nil {
		return err
	}
	items, err := kfc.ParsePayload([]byte(content))
	if kfc.IsNoData(err) {
		return noDataError{message: msgNoBranchData}
	}
	if err != nil {
		return err
	}

	extraction := kfc.Extraction{SourceURL: *kfcInput, Items: items}
	return saveKFC(cmd, extraction, msgNoBranchData)
}

func kfcFromNetwork(cmd *cobra.Command) error {
	opts := config.kfcOptions()
	opts.Insecure = *kfcInsecure
	dump, err := dumpOutput()
	if err != nil {
		return err
	}
	opts.DumpOutput = dump

	client, err := kfc.NewClient(opts, tel)
	if err != nil {
		return err
	}
	extraction, err := client.Scrape(cmd.Context())
	if kfc.IsNoData(err) {
		return noDataError{message: msgNoNetworkData}
	}
	if err != nil {
		return err
	}
	return saveKFC(cmd, extraction, msgNoNetworkData)
}

func saveKFC(cmd *cobra.Command, extraction kfc.Extraction, noData string) error {
	sourceURL := extraction.SourceURL
	if *kfcSourceURL != "" {
		sourceURL = *kfcSourceURL
	}
	return save(cmd.Context(), output{
		source:    "kfc",
		sourceURL: sourceURL,
		path:      *kfcOutput,
	}, extraction.Records(), noData)
}
