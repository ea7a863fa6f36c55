package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLocalFileStorageCreatesDir(t *testing.T) {
	tempDir := t.TempDir()
	outputDir := filepath.Join(tempDir, "episodes")

	store, err := NewLocalFileStorage(outputDir)

	assert.NoError(t, err)
	assert.NotNil(t, store)
	assert.DirExists(t, outputDir)
}

func TestEpisodePath(t *testing.T) {
	store := &LocalFileStorage{outputDir: "out"}

	assert.Equal(t, filepath.Join("out", "My_Episode.opus"), store.EpisodePath("My_Episode", "opus"))
	assert.Equal(t, filepath.Join("out", "My_Episode.tmp.mp3"), store.EpisodePath("My_Episode", "tmp.mp3"))
}

func TestFileExists(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalFileStorage(tempDir)
	assert.NoError(t, err)

	path := store.EpisodePath("present", "opus")
	assert.False(t, store.FileExists(path))

	assert.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	assert.True(t, store.FileExists(path))
}

func TestGetWriterAndRemove(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewLocalFileStorage(tempDir)
	assert.NoError(t, err)

	path := store.EpisodePath("written", "opus")
	w, err := store.GetWriter(path)
	assert.NoError(t, err)

	_, err = w.Write([]byte("audio bytes"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.True(t, store.FileExists(path))

	assert.NoError(t, store.Remove(path))
	assert.False(t, store.FileExists(path))

	// Removing a missing file is not an error.
	assert.NoError(t, store.Remove(path))
}
