// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/office2pdf/internal/container"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownExtractor converts documents by piping them through the
// markitdown container image.
type MarkitdownExtractor struct {
	runtime container.Runtime
}

// NewMarkitdownExtractor verifies that the markitdown image exists in rt
// before returning.
func NewMarkitdownExtractor(ctx context.Context, rt container.Runtime) (*MarkitdownExtractor, error) {
	if err := rt.ImageExists(ctx, imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt}, nil
}

// Extract implements Extractor. The file extension is passed to markitdown
// as a format hint since it only sees a stream.
func (m *MarkitdownExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		args = []string{"-x", strings.ToLower(ext)}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, imageMarkitdown, args, f, &out); err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	if out.Len() == 0 {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("markitdown produced empty output")}
	}
	return out.String(), nil
}
