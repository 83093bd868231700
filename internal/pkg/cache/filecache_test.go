package cache

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster-cache.json")
	c, err := NewFileCache(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := newTestCache(t)

	in := map[string][]string{"Mon 4-Aug": {"Bhanush", "Girish"}}
	require.NoError(t, c.Put("main-Aug-4-2025", in))

	var out map[string][]string
	require.True(t, c.Get("main-Aug-4-2025", &out))
	assert.Equal(t, in, out)
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache(t)
	var out map[string]string
	assert.False(t, c.Get("nothing-here", &out))
}

func TestEntriesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster-cache.json")
	logger := slog.New(slog.DiscardHandler)

	c, err := NewFileCache(path, logger)
	require.NoError(t, err)
	require.NoError(t, c.Put("main-employees", []string{"Bhanush"}))

	reopened, err := NewFileCache(path, logger)
	require.NoError(t, err)

	var names []string
	require.True(t, reopened.Get("main-employees", &names))
	assert.Equal(t, []string{"Bhanush"}, names)
}

func TestMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster-cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	c, err := NewFileCache(path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	var out any
	assert.False(t, c.Get("anything", &out))
	assert.Empty(t, c.Keys())
}

func TestMalformedEntryTreatedAsAbsent(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Put("main-Aug-4-2025", []string{"a", "b"}))

	// Decoding into an incompatible shape behaves like a miss.
	var out map[string]int
	assert.False(t, c.Get("main-Aug-4-2025", &out))
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)
	require.NoError(t, c.Put("k", 1))
	require.NoError(t, c.Delete("k"))
	require.NoError(t, c.Delete("k"))

	var out int
	assert.False(t, c.Get("k", &out))
}
