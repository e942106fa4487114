// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/container"
	"github.com/pdiddy/office2pdf/internal/extract"
	"github.com/pdiddy/office2pdf/internal/layout"
	"github.com/pdiddy/office2pdf/pkg/types"
)

const (
	defaultInputDir  = "input"
	defaultOutputDir = "output"
	defaultLogFile   = "logs/conversion.log"
	defaultHistoryDB = "logs/history.db"
)

// defaultExtensions are the input types the native backend can read.
var defaultExtensions = []string{
	".pptx", ".docx", ".doc", ".odt", ".odp", ".ppt", ".pdf",
	".txt", ".md", ".rtf", ".html", ".htm", ".xml",
}

// setDefaults registers every configuration key so that environment
// variables and config files can override any of them.
func setDefaults() {
	viper.SetDefault("input_dir", defaultInputDir)
	viper.SetDefault("output_dir", defaultOutputDir)
	viper.SetDefault("log_file", defaultLogFile)
	viper.SetDefault("backend", string(extract.BackendNative))
	viper.SetDefault("extract_images", true)
	viper.SetDefault("preview", false)
	viper.SetDefault("validate", true)
	viper.SetDefault("report", true)
	viper.SetDefault("history_db", defaultHistoryDB)
	viper.SetDefault("extensions", defaultExtensions)

	viper.SetDefault("page.width", layout.DefaultPageWidth)
	viper.SetDefault("page.height", layout.DefaultPageHeight)
	viper.SetDefault("page.margin", layout.DefaultMargin)
	viper.SetDefault("page.line_height", layout.DefaultLineHeight)
	viper.SetDefault("page.font", layout.DefaultFont)
	viper.SetDefault("page.font_size", layout.DefaultFontSize)
}

// bindFlag panics on a programming error: the flag must exist.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// loadConfig reads the merged configuration from flags, environment, config
// file and defaults.
func loadConfig() (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// geometry builds the page geometry for p, measured with the core font
// metrics the renderer uses.
func geometry(p types.PageConfig) (layout.Geometry, error) {
	if !layout.IsCoreFont(p.Font) {
		return layout.Geometry{}, fmt.Errorf("page font %q is not a core PDF font (want Helvetica, Times or Courier)", p.Font)
	}
	metrics := layout.NewCoreFontMetrics()
	g := layout.Geometry{
		PageWidth:  p.Width,
		PageHeight: p.Height,
		Margin:     p.Margin,
		LineHeight: p.LineHeight,
		Font:       p.Font,
		FontSize:   p.FontSize,
		Measure:    metrics.Measure,
	}
	if err := g.Validate(); err != nil {
		return g, fmt.Errorf("invalid page configuration: %w", err)
	}
	// Loading the font tables happens on first use and errors are sticky.
	metrics.Measure("M", g.Font, g.FontSize)
	if err := metrics.Check(); err != nil {
		return g, err
	}
	return g, nil
}

// newExtractor returns the text extractor for the configured backend. The
// markitdown backend needs docker or podman and the markitdown image.
func newExtractor(ctx context.Context, backend string) (extract.Extractor, error) {
	b, err := extract.ParseBackend(backend)
	if err != nil {
		return nil, err
	}
	if b == extract.BackendNative {
		return extract.NewNativeExtractor(), nil
	}

	rt, err := container.Detect(ctx)
	if err != nil {
		return nil, err
	}
	return extract.NewMarkitdownExtractor(ctx, rt)
}
