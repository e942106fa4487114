// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/history"
	"github.com/pdiddy/office2pdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent conversion runs",
	Long: `History lists the most recent conversion runs recorded in the history
database. Given a run ID, it lists the outcome of every file in that run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to list")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history_db")
	if path == "" {
		return fmt.Errorf("run history is disabled (history_db is empty)")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no run history at %s: %w", path, err)
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", args[0], err)
		}
		files, err := store.Files(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, files)
		}
		return formatFiles(os.Stdout, files)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, runs)
	}
	return formatRuns(os.Stdout, runs)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRuns(w io.Writer, runs []history.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-9s  %-7s  %-6s  %s\n",
		"ID", "Started", "Duration", "Converted", "Skipped", "Failed", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-9d  %-7d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.FinishedAt.Sub(r.StartedAt).Round(100*time.Millisecond),
			r.Converted, r.Skipped, r.Failed, r.InputDir)
	}
	return nil
}

func formatFiles(w io.Writer, files []types.FileResult) error {
	if len(files) == 0 {
		fmt.Fprintln(w, "No files recorded for this run.")
		return nil
	}

	fmt.Fprintf(w, "%-30s  %-9s  %-5s  %-6s  %s\n", "File", "Status", "Pages", "Images", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, f := range files {
		name := f.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		detail := f.Output
		if f.Status != types.FileConverted {
			detail = f.Error
			if f.Stage != "" {
				detail = string(f.Stage) + ": " + detail
			}
		}
		fmt.Fprintf(w, "%-30s  %-9s  %-5d  %-6d  %s\n", name, f.Status, f.Pages, len(f.Images), detail)
	}
	return nil
}
