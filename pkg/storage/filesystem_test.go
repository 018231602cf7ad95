package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("members/job-1.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, "members/job-1.csv", name)

	rc, size, err := store.Open(name)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	assert.Equal(t, int64(4), size)
	assert.Equal(t, "a,b\n", string(data))

	require.NoError(t, store.Delete(name))
	require.NoError(t, store.Delete(name))
	_, _, err = store.Open(name)
	assert.Error(t, err)
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../outside.csv", "/etc/passwd", "a/../../b"} {
		_, err := store.Save(name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("feed/old.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("feed/new.pdf", []byte("new"))
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "feed", "old.pdf"), past, past))

	deleted, err := store.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"feed/old.pdf"}, deleted)
}
