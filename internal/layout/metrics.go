// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// coreFonts lists the standard PDF font families that need no embedding.
var coreFonts = map[string]bool{
	"helvetica": true,
	"arial":     true,
	"times":     true,
	"courier":   true,
}

// IsCoreFont reports whether family names one of the standard PDF fonts the
// renderer can set without a font file.
func IsCoreFont(family string) bool {
	return coreFonts[strings.ToLower(family)]
}

// CoreFontMetrics measures text with the built-in width tables of the
// standard PDF fonts. Text is translated to cp1252 first, the encoding the
// core fonts are drawn in, so widths match what the renderer puts on the page.
type CoreFontMetrics struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	font      string
	size      float64
}

// NewCoreFontMetrics returns metrics in point units.
func NewCoreFontMetrics() *CoreFontMetrics {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	return &CoreFontMetrics{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Measure implements MeasureFunc. Unknown families are measured as
// Helvetica.
func (m *CoreFontMetrics) Measure(text, font string, size float64) float64 {
	if !IsCoreFont(font) {
		font = DefaultFont
	}
	if font != m.font || size != m.size {
		m.pdf.SetFont(font, "", size)
		m.font, m.size = font, size
	}
	return m.pdf.GetStringWidth(m.translate(text))
}

// Check reports the first error the underlying document has recorded.
func (m *CoreFontMetrics) Check() error {
	if err := m.pdf.Error(); err != nil {
		return fmt.Errorf("measuring text: %w", err)
	}
	return nil
}
