// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/office2pdf/internal/convert"
	"github.com/pdiddy/office2pdf/internal/extract"
	"github.com/pdiddy/office2pdf/internal/history"
	"github.com/pdiddy/office2pdf/internal/logsink"
	"github.com/pdiddy/office2pdf/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every document in the input folder to PDF",
	Long: `Convert extracts the text of each document in the input folder, lays it
out on Letter pages and writes <name>.pdf to the output folder. Pictures in
.pptx presentations are saved to <output>/<name>_images/.

A file that fails is logged and the batch continues. The command exits with
a non-zero status when any file failed.`,
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.String("backend", string(extract.BackendNative), "text extraction backend: native or markitdown")
	f.Bool("extract-images", true, "save pictures embedded in .pptx files")
	f.Bool("preview", false, "print the extracted text of each document")
	f.Bool("validate", true, "validate every written PDF")
	f.Bool("report", true, "write conversion-report.yaml to the output folder")
	f.StringSlice("extensions", defaultExtensions, "accepted input extensions")
	f.Bool("json", false, "print the run summary as JSON")

	bindFlag("backend", f.Lookup("backend"))
	bindFlag("extract_images", f.Lookup("extract-images"))
	bindFlag("preview", f.Lookup("preview"))
	bindFlag("validate", f.Lookup("validate"))
	bindFlag("report", f.Lookup("report"))
	bindFlag("extensions", f.Lookup("extensions"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := geometry(cfg.Page)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(ctx, cfg.Backend)
	if err != nil {
		return err
	}

	// Keep stdout clean for the JSON summary.
	var console io.Writer = os.Stdout
	if jsonOutput {
		console = os.Stderr
	}

	sink, err := logsink.Open(cfg.LogFile, console)
	if err != nil {
		return err
	}
	defer sink.Close()

	d := &convert.Driver{
		Extractor: extractor,
		Images:    extract.NewPPTXImageExtractor(),
		Renderer:  render.NewPDFRenderer(cfg.Validate),
		Geometry:  g,
		Log:       sink.Logger,
		Options: convert.Options{
			InputDir:      cfg.InputDir,
			OutputDir:     cfg.OutputDir,
			Extensions:    cfg.Extensions,
			ExtractImages: cfg.ExtractImages,
			Report:        cfg.Report,
		},
	}
	if cfg.Preview {
		d.Preview = console
	}

	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()
		d.History = store
	}

	summary, runErr := d.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		sink.Errorf("conversion run aborted: %v", runErr)
		return runErr
	}

	// An interrupted run still reports the files it finished.
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", summary.Failed)
	}
	return nil
}
