package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hashes")
	store := NewHashStore(dir, nil)

	t.Run("missing record", func(t *testing.T) {
		hash, ok, err := store.Get("petstore")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, hash)
	})

	t.Run("roundtrip", func(t *testing.T) {
		require.NoError(t, store.Put("petstore", "abc123"))

		hash, ok, err := store.Get("petstore")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc123", hash)
	})

	t.Run("records are per api", func(t *testing.T) {
		require.NoError(t, store.Put("orders", "def456"))

		hash, ok, err := store.Get("petstore")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "abc123", hash)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put("petstore", "fresh"))
		hash, ok, err := store.Get("petstore")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "fresh", hash)
	})
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.0\n"), 0644))

	first, err := HashFile(path)
	require.NoError(t, err)
	assert.Len(t, first, 64, "hex sha-256")

	second, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.1.0\n"), 0644))
	third, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
