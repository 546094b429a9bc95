package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets", "token")
	store := NewFileStore(path)

	assert.False(t, store.Exists())
	_, err := store.Read()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Write("  abc.def\n"))
	assert.True(t, store.Exists())

	token, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(TOKEN_FILE_MODE), info.Mode().Perm())
}

func TestFileStoreEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0600))

	store := NewFileStore(path)
	_, err := store.Read()
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Error(t, store.Write("   "))
}
