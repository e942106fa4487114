// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

// lockFile is created in the output directory for the duration of a run.
const lockFile = ".office2pdf.lock"

// ErrLocked is returned when another run holds the output directory.
var ErrLocked = errors.New("output directory is in use by another conversion run")

type runLock struct {
	fl *flock.Flock
}

// acquireLock takes the output directory lock without waiting.
func acquireLock(dir string) (*runLock, error) {
	fl := flock.New(filepath.Join(dir, lockFile))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return &runLock{fl: fl}, nil
}

func (l *runLock) release(log logrus.FieldLogger) {
	if err := l.fl.Unlock(); err != nil {
		log.Errorf("failed to release run lock: %v", err)
	}
}
