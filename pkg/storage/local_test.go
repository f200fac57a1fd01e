package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	analysisID := uuid.New()

	t.Run("save and open round trip", func(t *testing.T) {
		content := "page,line_index,date\n1,0,2025-09-30\n"
		info, err := store.Save(ctx, analysisID, "scored.csv", ContentTypeCSV, strings.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "scored.csv", info.Name)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, ContentTypeCSV, info.ContentType)

		rc, got, err := store.Open(ctx, analysisID, info.ID)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
		assert.Equal(t, info.ID, got.ID)
	})

	t.Run("sanitizes hostile filenames", func(t *testing.T) {
		info, err := store.Save(ctx, analysisID, "../../etc/passwd", ContentTypeJSON, strings.NewReader("{}"))
		require.NoError(t, err)
		assert.NotContains(t, info.Path, "..")
		assert.NotContains(t, info.Path, "/")
	})

	t.Run("list and delete", func(t *testing.T) {
		runID := uuid.New()
		info, err := store.Save(ctx, runID, "report.xlsx", ContentTypeXLSX, strings.NewReader("xlsx-bytes"))
		require.NoError(t, err)

		artifacts, err := store.List(ctx, runID)
		require.NoError(t, err)
		require.Len(t, artifacts, 1)
		assert.Equal(t, "report.xlsx", artifacts[0].Name)

		require.NoError(t, store.Delete(ctx, runID, info.ID))

		artifacts, err = store.List(ctx, runID)
		require.NoError(t, err)
		assert.Empty(t, artifacts)

		_, err = store.GetInfo(ctx, runID, info.ID)
		assert.Error(t, err)
	})

	t.Run("unknown artifact", func(t *testing.T) {
		_, _, err := store.Open(ctx, analysisID, uuid.New())
		assert.Error(t, err)
	})
}
