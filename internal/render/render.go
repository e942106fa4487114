// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes a layout.Placement to a PDF file, one physical page
// per placement page, text only.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/office2pdf/internal/layout"
)

const creator = "office2pdf"

func init() {
	// Use pdfcpu's built-in configuration instead of creating one under the
	// user's config directory.
	model.ConfigPath = "disable"
}

// Renderer writes a placement to path using the geometry it was laid out
// with.
type Renderer interface {
	Render(p layout.Placement, g layout.Geometry, path string) error
}

// RenderError reports a failure to produce the output document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PDFRenderer draws placements with a core PDF font. When Validate is set,
// every written file is checked with pdfcpu, including its page count, before
// Render returns.
type PDFRenderer struct {
	Validate bool
}

// NewPDFRenderer creates a renderer.
func NewPDFRenderer(validate bool) *PDFRenderer {
	return &PDFRenderer{Validate: validate}
}

// Render creates or overwrites path. A document always has at least one
// page, even when the placement is empty.
func (r *PDFRenderer) Render(p layout.Placement, g layout.Geometry, path string) error {
	if !layout.IsCoreFont(g.Font) {
		return &RenderError{Path: path, Err: fmt.Errorf("font %q is not a core PDF font", g.Font)}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &RenderError{Path: path, Err: fmt.Errorf("creating output directory: %w", err)}
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.PageWidth, Ht: g.PageHeight},
	})
	pdf.SetMargins(g.Margin, g.Margin, g.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(creator, true)
	pdf.SetTitle(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), true)
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	// Placement y is measured up from the bottom edge; gofpdf measures down
	// from the top.
	pages := max(1, p.Pages())
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.SetFont(g.Font, "", g.FontSize)
		for _, line := range p.OnPage(i) {
			if line.Text == "" {
				continue
			}
			pdf.Text(g.Margin, g.PageHeight-line.Y, translate(line.Text))
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return &RenderError{Path: path, Err: err}
	}

	if r.Validate {
		if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
			return &RenderError{Path: path, Err: fmt.Errorf("validating output: %w", err)}
		}
		n, err := PageCount(path)
		if err != nil {
			return &RenderError{Path: path, Err: err}
		}
		if n != pages {
			return &RenderError{Path: path, Err: fmt.Errorf("wrote %d pages, placement has %d", n, pages)}
		}
	}
	return nil
}

// PageCount returns the number of physical pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}
