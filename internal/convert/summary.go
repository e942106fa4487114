// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"time"

	"github.com/pdiddy/office2pdf/internal/history"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// Summary holds the outcome of a batch conversion run.
type Summary struct {
	StartedAt  time.Time          `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time          `json:"finished_at" yaml:"finished_at"`
	InputDir   string             `json:"input_dir" yaml:"input_dir"`
	OutputDir  string             `json:"output_dir" yaml:"output_dir"`
	Converted  int                `json:"converted" yaml:"converted"`
	Skipped    int                `json:"skipped" yaml:"skipped"`
	Failed     int                `json:"failed" yaml:"failed"`
	Files      []types.FileResult `json:"files" yaml:"files"`
}

// Total returns the number of files seen.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// HasFailures reports whether any file failed conversion.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

func (s *Summary) add(r types.FileResult) {
	switch r.Status {
	case types.FileConverted:
		s.Converted++
	case types.FileSkipped:
		s.Skipped++
	case types.FileFailed:
		s.Failed++
	}
	s.Files = append(s.Files, r)
}

// Run converts the summary to its history record.
func (s Summary) Run() history.Run {
	return history.Run{
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		InputDir:   s.InputDir,
		OutputDir:  s.OutputDir,
		Converted:  s.Converted,
		Failed:     s.Failed,
		Skipped:    s.Skipped,
		Files:      s.Files,
	}
}
