package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jinford/log-indexer/internal/module/retention/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSystemStore(t *testing.T) {
	_, err := NewFileSystemStore("")
	require.Error(t, err)

	_, err = NewFileSystemStore(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = NewFileSystemStore(file)
	require.Error(t, err)
}

func TestFileSystemStore_Delete(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "1", "ab"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "1", "ab", "file-1"), []byte("data"), 0o600))

	store, err := NewFileSystemStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, "1/ab/file-1"))
	_, err = os.Stat(filepath.Join(root, "1", "ab", "file-1"))
	assert.True(t, os.IsNotExist(err))

	err = store.Delete(ctx, "1/ab/file-1")
	assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
}

func TestFileSystemStore_RejectsPathOutsideRoot(t *testing.T) {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []string{"../etc/passwd", "/abs/path", ""} {
		err := store.Delete(context.Background(), id)
		require.Error(t, err, id)
		assert.NotErrorIs(t, err, domain.ErrBinaryNotFound, id)
	}
}

func TestFileSystemStore_CanceledContext(t *testing.T) {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Delete(ctx, "x"), context.Canceled)
}
