// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// reportFile is written to the output directory after each run.
const reportFile = "conversion-report.yaml"

// WriteReport writes summary as YAML to dir and returns the file path. The
// file is written to a temporary name and renamed so a reader never sees a
// partial report.
func WriteReport(summary Summary, dir string) (string, error) {
	data, err := yaml.Marshal(&summary)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(dir, reportFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming report: %w", err)
	}
	return path, nil
}

// ReadReport loads the report written to dir by the last run.
func ReadReport(dir string) (Summary, error) {
	var s Summary
	data, err := os.ReadFile(filepath.Join(dir, reportFile))
	if err != nil {
		return s, fmt.Errorf("reading report: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing report: %w", err)
	}
	return s, nil
}
