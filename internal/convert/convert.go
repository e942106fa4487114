// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs batch conversions: every document in an input
// directory is extracted to text, laid out and rendered as a PDF in the
// output directory. A file that fails is logged and recorded, and the batch
// moves on to the next one.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/internal/extract"
	"github.com/pdiddy/office2pdf/internal/history"
	"github.com/pdiddy/office2pdf/internal/layout"
	"github.com/pdiddy/office2pdf/internal/render"
	"github.com/pdiddy/office2pdf/pkg/types"
)

const (
	// imagesSuffix is appended to the input stem to name its image directory.
	imagesSuffix = "_images"
	// pptxExt marks inputs whose pictures are extracted.
	pptxExt = ".pptx"
)

// Recorder stores a finished run. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (int64, error)
}

// Options controls which files are converted and what is produced besides
// the PDFs.
type Options struct {
	InputDir  string
	OutputDir string

	// Extensions lists accepted input extensions (".pptx"); empty accepts
	// every file.
	Extensions []string

	// ExtractImages saves pictures of .pptx inputs to <stem>_images/.
	ExtractImages bool

	// Preview, when set, receives each document's cleaned text.
	Preview io.Writer

	// Report writes conversion-report.yaml to OutputDir.
	Report bool
}

// Driver converts the documents of one input directory. Extractor, Renderer
// and Log are required; Images and History may be nil.
type Driver struct {
	Extractor extract.Extractor
	Images    extract.ImageExtractor
	Renderer  render.Renderer
	Geometry  layout.Geometry
	Log       logrus.FieldLogger
	History   Recorder
	Options
}

// Run converts every accepted file of the input directory, one at a time, in
// name order. Per-file failures are reported in the Summary, never as the
// returned error, which is reserved for problems that stop the whole batch:
// directories that cannot be created or read, or another run holding the
// output directory. When ctx is canceled, Run stops before the next file and
// returns the partial Summary, still reported and recorded, with an error.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	summary := Summary{
		StartedAt: time.Now(),
		InputDir:  d.InputDir,
		OutputDir: d.OutputDir,
	}

	for _, dir := range []string{d.InputDir, d.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return summary, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	lock, err := acquireLock(d.OutputDir)
	if err != nil {
		return summary, err
	}
	defer lock.release(d.Log)

	names, err := listInputs(d.InputDir)
	if err != nil {
		return summary, err
	}
	if len(names) == 0 {
		d.Log.Info("no files found in input directory")
		summary.FinishedAt = time.Now()
		return summary, nil
	}

	accepted := extensionSet(d.Extensions)
	var interrupted error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			interrupted = fmt.Errorf("conversion interrupted: %w", err)
			d.Log.Errorf("conversion interrupted, %d file(s) not processed", len(names)-summary.Total())
			break
		}
		var res types.FileResult
		if accepted != nil && !accepted[strings.ToLower(filepath.Ext(name))] {
			res = types.FileResult{
				Name:   name,
				Input:  filepath.Join(d.InputDir, name),
				Status: types.FileSkipped,
				Error:  "unsupported extension",
			}
			d.Log.Infof("skipping %s: unsupported extension", name)
		} else {
			res = d.ConvertFile(ctx, name)
		}
		summary.add(res)
	}
	summary.FinishedAt = time.Now()

	d.Log.Infof("batch summary: %d converted, %d skipped, %d failed (total: %d)",
		summary.Converted, summary.Skipped, summary.Failed, summary.Total())

	d.finish(context.WithoutCancel(ctx), summary)
	return summary, interrupted
}

// ConvertFile converts the input file name, relative to InputDir, to
// <OutputDir>/<stem>.pdf and reports the outcome.
func (d *Driver) ConvertFile(ctx context.Context, name string) types.FileResult {
	in := filepath.Join(d.InputDir, name)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	res := types.FileResult{Name: name, Input: in}

	doc, stage, err := d.readDocument(ctx, in, filepath.Join(d.OutputDir, stem+imagesSuffix))
	res.Images = doc.Images
	if err != nil {
		d.Log.Errorf("error converting %s: %v", name, err)
		return failed(res, stage, err)
	}

	if d.Preview != nil {
		if _, err := fmt.Fprintf(d.Preview, "\n--- Extracted content of %s ---\n\n%s\n\n------------------------------------\n\n", name, doc.Text); err != nil {
			d.Log.Errorf("error writing preview of %s: %v", name, err)
		}
	}

	out := filepath.Join(d.OutputDir, stem+".pdf")
	placement := layout.Paginate(doc.Text, d.Geometry)
	if err := d.Renderer.Render(placement, d.Geometry, out); err != nil {
		d.Log.Errorf("error saving PDF %s: %v", out, err)
		return failed(res, types.StageRender, err)
	}
	d.Log.Infof("PDF saved: %s", out)

	res.Output = out
	res.Lines = len(placement)
	res.Pages = max(1, placement.Pages())
	res.Status = types.FileConverted
	return res
}

// readDocument extracts and cleans the text of in and, for presentations,
// saves its pictures to imgDir.
func (d *Driver) readDocument(ctx context.Context, in, imgDir string) (types.Document, types.Stage, error) {
	doc := types.Document{Path: in}

	raw, err := d.Extractor.Extract(ctx, in)
	if err != nil {
		return doc, types.StageExtract, err
	}
	doc.Text = extract.CleanText(raw)

	if d.ExtractImages && d.Images != nil && strings.EqualFold(filepath.Ext(in), pptxExt) {
		images, err := d.Images.ExtractImages(in, imgDir)
		doc.Images = images
		if err != nil {
			return doc, types.StageImages, err
		}
	}
	return doc, "", nil
}

func failed(res types.FileResult, stage types.Stage, err error) types.FileResult {
	res.Status = types.FileFailed
	res.Stage = stage
	res.Error = err.Error()
	return res
}

// finish writes the report and history. Failures here are logged; the
// conversions themselves already happened.
func (d *Driver) finish(ctx context.Context, summary Summary) {
	if d.Report {
		path, err := WriteReport(summary, d.OutputDir)
		if err != nil {
			d.Log.Errorf("error writing report: %v", err)
		} else {
			d.Log.Infof("report saved: %s", path)
		}
	}
	if d.History != nil {
		if _, err := d.History.Record(ctx, summary.Run()); err != nil {
			d.Log.Errorf("error recording run history: %v", err)
		}
	}
}

// listInputs returns the regular, non-hidden files of dir in name order.
func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// extensionSet normalizes exts to lower-case with a leading dot. It returns
// nil, meaning accept all, when exts is empty.
func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}
