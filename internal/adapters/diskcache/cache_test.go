package diskcache_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/compat/internal/adapters/diskcache"
	"go.trai.ch/compat/internal/core/domain"
)

func TestCache_WriteThenRead(t *testing.T) {
	root := t.TempDir()
	path := domain.CachePath(root, "ABCDEF", "Newtonsoft.Json")
	cache := diskcache.New(nil)

	assert.False(t, cache.Exists(path))

	w, err := cache.OpenWrite(path)
	require.NoError(t, err)
	assert.False(t, cache.Exists(path), "entry must not be visible before Close")

	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.True(t, cache.Exists(path))

	r, err := cache.OpenRead(path)
	require.NoError(t, err)
	defer r.Close() //nolint:errcheck // Test cleanup

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be gone after Close")
}

func TestCache_LastWriterWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "H", "serilog.json.gz")
	cache := diskcache.New(nil)

	first, err := cache.OpenWrite(path)
	require.NoError(t, err)
	second, err := cache.OpenWrite(path)
	require.NoError(t, err)

	_, err = first.Write([]byte("first"))
	require.NoError(t, err)
	_, err = second.Write([]byte("second"))
	require.NoError(t, err)

	require.NoError(t, first.Close())
	require.NoError(t, second.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestCache_OpenReadMissing(t *testing.T) {
	cache := diskcache.New(nil)

	_, err := cache.OpenRead(filepath.Join(t.TempDir(), "missing.json.gz"))
	require.ErrorIs(t, err, domain.ErrDiskCacheReadFailed)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCache_ExistsIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "serilog.json.gz")
	require.NoError(t, os.Mkdir(dir, 0o750))

	assert.False(t, diskcache.New(nil).Exists(dir))
}

func TestCache_Clear(t *testing.T) {
	root := filepath.Join(t.TempDir(), "cache")
	cache := diskcache.New(nil)

	for _, id := range []string{"Newtonsoft.Json", "Serilog"} {
		w, err := cache.OpenWrite(domain.CachePath(root, "A1", id))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	stray, err := cache.OpenWrite(domain.CachePath(root, "B2", "Contoso.Core"))
	require.NoError(t, err)
	defer stray.Close() //nolint:errcheck // Closing after Clear fails, which is expected

	removed, err := cache.Clear(root)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = os.Stat(root)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCache_ClearMissingRoot(t *testing.T) {
	removed, err := diskcache.New(nil).Clear(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCache_ClearEmptyRoot(t *testing.T) {
	_, err := diskcache.New(nil).Clear("")
	require.ErrorIs(t, err, domain.ErrDiskCacheWriteFailed)
}
