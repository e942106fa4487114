// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/convert"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the report of the last run in the output folder",
	Long: `Report reads conversion-report.yaml from the output folder and prints the
outcome of every file of the last conversion run. It works without the
history database.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	summary, err := convert.ReadReport(viper.GetString("output_dir"))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return writeJSON(os.Stdout, summary)
	}
	return formatSummary(os.Stdout, summary)
}

func formatSummary(w io.Writer, s convert.Summary) error {
	fmt.Fprintf(w, "Run started %s, input %s, output %s\n",
		s.StartedAt.Local().Format("2006-01-02 15:04:05"), s.InputDir, s.OutputDir)
	fmt.Fprintf(w, "%d converted, %d skipped, %d failed (total: %d)\n\n",
		s.Converted, s.Skipped, s.Failed, s.Total())
	return formatFiles(w, s.Files)
}
