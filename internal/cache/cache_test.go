package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache_SetGetDelete(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir)

	_, ok := c.Get("adminObituaries")
	assert.False(t, ok)

	require.NoError(t, c.Set("adminObituaries", []byte(`[{"id":1}]`), 0))
	got, ok := c.Get("adminObituaries")
	require.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, string(got))

	// The file is plain JSON so the admin tool can write it directly.
	raw, err := os.ReadFile(filepath.Join(dir, "adminObituaries.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(raw))

	require.NoError(t, c.Delete("adminObituaries"))
	require.NoError(t, c.Delete("adminObituaries"))
	_, ok = c.Get("adminObituaries")
	assert.False(t, ok)
}

func TestDiskCache_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir)
	require.NoError(t, c.Set("../escape", []byte("x"), 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got, ok := c.Get("../escape")
	assert.True(t, ok)
	assert.Equal(t, "x", string(got))
}

func TestMemoryCache_Expires(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 10*time.Millisecond))
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(got))

	time.Sleep(30 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewDiskCache(dir).Set("k", []byte("from-disk"), 0))

	c := NewLayeredCache(time.Minute, dir)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "from-disk", string(got))

	// Served from memory once promoted, even after the file changes.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.json"), []byte("changed"), 0644))
	got, ok = c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "from-disk", string(got))

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)
}
