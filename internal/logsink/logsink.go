// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logsink provides the run log: an append-only text file, mirrored
// to the console, with one "[timestamp] [LEVEL] message" entry per line.
package logsink

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is the entry timestamp layout, local time.
const TimestampFormat = "2006-01-02 15:04:05"

// LineFormatter renders entries as "[timestamp] [LEVEL] message". Fields, if
// any, follow the message as sorted key=value pairs.
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] [%s] %s", e.Time.Format(TimestampFormat), levelLabel(e.Level), e.Message)

	if len(e.Data) > 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelLabel(l logrus.Level) string {
	switch {
	case l <= logrus.ErrorLevel:
		return "ERROR"
	case l == logrus.WarnLevel:
		return "WARN"
	default:
		return "INFO"
	}
}

// Sink owns the log file handle and the logger writing to it.
type Sink struct {
	*logrus.Logger
	file *os.File
}

// Open appends to the log file at path, creating it and its directory if
// needed. Entries are also written to console when it is non-nil.
func Open(path string, console io.Writer) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	var out io.Writer = f
	if console != nil {
		out = io.MultiWriter(console, f)
	}
	return &Sink{Logger: New(out), file: f}, nil
}

// New returns a logger writing formatted entries to w.
func New(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&LineFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Path returns the log file path.
func (s *Sink) Path() string {
	return s.file.Name()
}

// Close closes the log file. The logger must not be used afterwards.
func (s *Sink) Close() error {
	return s.file.Close()
}
