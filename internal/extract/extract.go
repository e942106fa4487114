// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls plain text and embedded images out of office
// documents. Format parsing is left to third-party libraries or to the
// markitdown tool image; this package only selects a backend and normalizes
// what comes back.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"
)

// Extractor returns the text content of the document at path.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractionError reports a failure to read text or images from a document.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Backend names an Extractor implementation.
type Backend string

const (
	BackendNative     Backend = "native"
	BackendMarkitdown Backend = "markitdown"
)

// ParseBackend validates a backend name from configuration.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendNative, BackendMarkitdown:
		return b, nil
	case "":
		return BackendNative, nil
	default:
		return "", fmt.Errorf("unknown extraction backend %q (want %s or %s)", s, BackendNative, BackendMarkitdown)
	}
}

// slideMarker matches the per-slide annotations markitdown inserts.
var slideMarker = regexp.MustCompile(`<!-- Slide number: \d+ -->`)

// CleanText removes slide-number annotations and trims surrounding
// whitespace.
func CleanText(s string) string {
	return strings.TrimSpace(slideMarker.ReplaceAllString(s, ""))
}

// NativeExtractor reads documents in-process: PDFs through ledongthuc/pdf,
// plain text and Markdown directly, and every other format through docconv.
type NativeExtractor struct{}

// NewNativeExtractor creates a NativeExtractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// Extract implements Extractor.
func (n *NativeExtractor) Extract(_ context.Context, path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = pdfText(path)
	case ".txt", ".md":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	default:
		text, err = docconvText(path)
	}
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return text, nil
}

func pdfText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}
	data, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}
	return string(data), nil
}

func docconvText(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("converting with docconv: %w", err)
	}
	return res.Body, nil
}
