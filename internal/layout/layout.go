// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout lays extracted text out onto fixed-size pages. Lines are
// filled greedily word by word and pages break when the vertical cursor runs
// past the bottom margin.
package layout

import (
	"fmt"
	"strings"
)

// MeasureFunc reports the rendered width of text set in font at size, in the
// same units as the page geometry.
type MeasureFunc func(text, font string, size float64) float64

// Geometry holds the fixed page measurements for a run. Vertical positions
// follow the PDF convention: y grows upward from the bottom edge.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64
	Font       string
	FontSize   float64
	Measure    MeasureFunc
}

// Default page geometry: US Letter in points, one-inch margins, Helvetica 12
// on a 14pt line.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
	DefaultMargin     = 72.0
	DefaultLineHeight = 14.0
	DefaultFont       = "Helvetica"
	DefaultFontSize   = 12.0
)

// DefaultGeometry returns the Letter geometry measured with m.
func DefaultGeometry(m MeasureFunc) Geometry {
	return Geometry{
		PageWidth:  DefaultPageWidth,
		PageHeight: DefaultPageHeight,
		Margin:     DefaultMargin,
		LineHeight: DefaultLineHeight,
		Font:       DefaultFont,
		FontSize:   DefaultFontSize,
		Measure:    m,
	}
}

// MaxWidth is the horizontal room between the left and right margins.
func (g Geometry) MaxWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// top is the baseline of the first line on every page.
func (g Geometry) top() float64 {
	return g.PageHeight - g.Margin
}

// Validate rejects geometries that cannot hold a single line of text.
func (g Geometry) Validate() error {
	switch {
	case g.PageWidth <= 0 || g.PageHeight <= 0:
		return fmt.Errorf("page size must be positive, got %gx%g", g.PageWidth, g.PageHeight)
	case g.Margin < 0:
		return fmt.Errorf("margin must not be negative, got %g", g.Margin)
	case g.MaxWidth() <= 0:
		return fmt.Errorf("margin %g leaves no horizontal room on a page %g wide", g.Margin, g.PageWidth)
	case g.top() < g.Margin:
		return fmt.Errorf("margin %g leaves no vertical room on a page %g high", g.Margin, g.PageHeight)
	case g.LineHeight <= 0:
		return fmt.Errorf("line height must be positive, got %g", g.LineHeight)
	case g.FontSize <= 0:
		return fmt.Errorf("font size must be positive, got %g", g.FontSize)
	case strings.TrimSpace(g.Font) == "":
		return fmt.Errorf("font family is required")
	case g.Measure == nil:
		return fmt.Errorf("font metrics are required")
	}
	return nil
}

// PlacedLine is one line of text fixed to a page and baseline.
type PlacedLine struct {
	Text string  `json:"text" yaml:"text"`
	Page int     `json:"page" yaml:"page"`
	Y    float64 `json:"y" yaml:"y"`
}

// Placement is the resolved sequence of lines, in reading order, ready for
// rendering.
type Placement []PlacedLine

// Pages returns the number of pages the placement uses. An empty placement
// uses none.
func (p Placement) Pages() int {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].Page + 1
}

// OnPage returns the lines placed on page i.
func (p Placement) OnPage(i int) []PlacedLine {
	var out []PlacedLine
	for _, l := range p {
		if l.Page == i {
			out = append(out, l)
		}
	}
	return out
}

// Paginate wraps text to the geometry's width and assigns each line a page
// and baseline. It has no side effects; the same inputs always produce the
// same placement. Empty text produces an empty placement.
func Paginate(text string, g Geometry) Placement {
	if text == "" {
		return Placement{}
	}
	return AssignPages(WrapLines(text, g), g)
}

// WrapLines splits text into paragraphs on newlines and fills each paragraph
// greedily: a word joins the current line while the result still fits within
// MaxWidth. A word too wide for an empty line is placed alone, unsplit. Every
// paragraph, empty or not, is followed by exactly one blank line.
func WrapLines(text string, g Geometry) []string {
	maxWidth := g.MaxWidth()
	var lines []string

	for _, paragraph := range strings.Split(text, "\n") {
		current := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if g.Measure(candidate, g.Font, g.FontSize) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
		if current != "" {
			lines = append(lines, current)
		}
		lines = append(lines, "")
	}

	return lines
}

// AssignPages walks lines top to bottom. Before each line, if the cursor has
// dropped below the bottom margin, a new page starts with the cursor back at
// the top margin. Breaks depend only on the cursor, never on the lines still
// to come.
func AssignPages(lines []string, g Geometry) Placement {
	placement := make(Placement, 0, len(lines))
	page := 0
	y := g.top()

	for _, line := range lines {
		if y < g.Margin {
			page++
			y = g.top()
		}
		placement = append(placement, PlacedLine{Text: line, Page: page, Y: y})
		y -= g.LineHeight
	}

	return placement
}
