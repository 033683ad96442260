package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Backfill missing translated summaries in a CSV file",
	Long: `Translate the summary column of every row whose translated-summary column is
empty. Progress is checkpointed next to the output file and a rerun resumes
from the checkpoint.

Examples:
  articlebrowser enrich --input data/es_1.csv
  articlebrowser enrich --input data/es_1.csv --output data/es_1_translated.csv`,
	RunE: runEnrich,
}

func init() {
	rootCmd.AddCommand(enrichCmd)

	enrichCmd.Flags().String("input", "", "CSV file to read (required)")
	enrichCmd.Flags().String("output", "", "CSV file to write (default <input>_translated.csv)")
	_ = enrichCmd.MarkFlagRequired("input")
}

func runEnrich(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = defaultOutput(input)
	}

	application, err := newApplication(cmd, false)
	if err != nil {
		return err
	}
	defer application.Close()

	stats, err := application.Enrich(cmd.Context(), input, output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total rows:   %d\n", stats.Total)
	fmt.Fprintf(out, "Translated:   %d\n", stats.Translated)
	fmt.Fprintf(out, "Skipped:      %d\n", stats.Skipped)
	fmt.Fprintf(out, "Failed:       %d\n", stats.Failed)
	fmt.Fprintf(out, "Success rate: %.1f%%\n", stats.SuccessRate()*100)
	fmt.Fprintf(out, "Wrote %s\n", output)
	return nil
}

func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_translated" + ext
}
