// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document is the extracted content of one input file.
type Document struct {
	// Path is the input file.
	Path string `json:"path" yaml:"path"`

	// Text is the cleaned plain text.
	Text string `json:"text" yaml:"text"`

	// Images lists the image files saved from the document, if any.
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// FileStatus is the outcome of converting one input file.
type FileStatus string

const (
	FileConverted FileStatus = "converted"
	FileFailed    FileStatus = "failed"
	FileSkipped   FileStatus = "skipped"
)

// Stage names the step at which a file failed.
type Stage string

const (
	StageExtract Stage = "extract"
	StageImages  Stage = "images"
	StageRender  Stage = "render"
)

// FileResult records what happened to one input file.
type FileResult struct {
	// Name is the input file name without directory.
	Name string `json:"name" yaml:"name"`

	Input  string   `json:"input" yaml:"input"`
	Output string   `json:"output,omitempty" yaml:"output,omitempty"`
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`

	// Lines and Pages describe the rendered layout.
	Lines int `json:"lines,omitempty" yaml:"lines,omitempty"`
	Pages int `json:"pages,omitempty" yaml:"pages,omitempty"`

	Status FileStatus `json:"status" yaml:"status"`

	// Stage and Error are set when Status is FileFailed. Error also carries
	// the reason a file was skipped.
	Stage Stage  `json:"stage,omitempty" yaml:"stage,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
