// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageConfig holds the page geometry settings. Lengths are in PDF points.
type PageConfig struct {
	// Width and Height are the page size (default US Letter, 612x792).
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`

	// Margin is applied on all four sides (default 72, one inch).
	Margin float64 `json:"margin" yaml:"margin" mapstructure:"margin"`

	// LineHeight is the baseline-to-baseline distance (default 14).
	LineHeight float64 `json:"line_height" yaml:"line_height" mapstructure:"line_height"`

	// Font is a core PDF font family: Helvetica, Times or Courier.
	Font string `json:"font" yaml:"font" mapstructure:"font"`

	// FontSize is the type size in points (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size" mapstructure:"font_size"`
}

// ConversionConfig holds settings for a batch conversion run.
type ConversionConfig struct {
	// InputDir is scanned (non-recursively) for documents to convert.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives <name>.pdf files and <name>_images/ directories.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// LogFile is the append-only run log.
	LogFile string `json:"log_file" yaml:"log_file" mapstructure:"log_file"`

	// Backend selects text extraction: native or markitdown.
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`

	// ExtractImages saves pictures from .pptx inputs.
	ExtractImages bool `json:"extract_images" yaml:"extract_images" mapstructure:"extract_images"`

	// Preview echoes each document's cleaned text to the console.
	Preview bool `json:"preview" yaml:"preview" mapstructure:"preview"`

	// Validate checks every written PDF with pdfcpu.
	Validate bool `json:"validate" yaml:"validate" mapstructure:"validate"`

	// Report writes conversion-report.yaml into OutputDir after the run.
	Report bool `json:"report" yaml:"report" mapstructure:"report"`

	// HistoryDB is the SQLite run history; empty disables it.
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`

	// Extensions lists the accepted input extensions, with leading dots.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`

	Page PageConfig `json:"page" yaml:"page" mapstructure:"page"`
}
