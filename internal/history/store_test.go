// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/office2pdf/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "logs", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndFiles(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	files := []types.FileResult{
		{
			Name: "deck.pptx", Input: "input/deck.pptx", Output: "output/deck.pdf",
			Images: []string{"output/deck_images/slide_1_img_2.png"},
			Lines:  40, Pages: 1, Status: types.FileConverted,
		},
		{
			Name: "broken.docx", Input: "input/broken.docx",
			Status: types.FileFailed, Stage: types.StageExtract, Error: "extracting input/broken.docx: zip: not a valid zip file",
		},
	}
	id, err := s.Record(ctx, Run{
		StartedAt: start, FinishedAt: start.Add(3 * time.Second),
		InputDir: "input", OutputDir: "output",
		Converted: 1, Failed: 1, Files: files,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.Files(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, files, got)
}

func TestRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.Record(ctx, Run{
			StartedAt:  start.Add(time.Duration(i) * time.Hour),
			FinishedAt: start.Add(time.Duration(i)*time.Hour + time.Minute),
			InputDir:   "input", OutputDir: "output",
			Converted: i,
		})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 2, runs[0].Converted, "newest first")
	assert.Equal(t, 1, runs[1].Converted)
	assert.True(t, runs[0].StartedAt.Equal(start.Add(2*time.Hour)))
	assert.Empty(t, runs[0].Files)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(ctx, Run{StartedAt: time.Now(), FinishedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
