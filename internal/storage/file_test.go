package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreGetSetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = s.Get(KeyToken)
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, s.Set(KeyToken, []byte(`"abc-123"`)))

	raw, err := s.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, `"abc-123"`, string(raw))

	require.NoError(t, s.Delete(KeyToken))
	_, err = s.Get(KeyToken)
	assert.Equal(t, ErrNotFound, err)

	// Deleting a missing key is not an error.
	assert.NoError(t, s.Delete(KeyToken))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyGuestCart, []byte(`[{"id":"p1","quantity":2}]`)))
	require.NoError(t, s.Set(KeyToken, []byte(`"tok"`)))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	raw, err := reopened.Get(KeyGuestCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","quantity":2}]`, string(raw))

	raw, err = reopened.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, `"tok"`, string(raw))
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyToken, []byte(`"tok"`)))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}
