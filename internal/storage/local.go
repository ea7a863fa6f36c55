// Package storage handles placement of downloaded episode files, locally and
// optionally mirrored to a cloud bucket.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalFileStorage implements the Storage interface for the local filesystem
type LocalFileStorage struct {
	outputDir string
}

// NewLocalFileStorage creates a new local file storage instance rooted at
// outputDir, creating it if needed.
func NewLocalFileStorage(outputDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	return &LocalFileStorage{outputDir: outputDir}, nil
}

// EpisodePath returns the path for an episode file
func (s *LocalFileStorage) EpisodePath(baseName, ext string) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("%s.%s", baseName, ext))
}

// FileExists checks if a file exists
func (s *LocalFileStorage) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetWriter returns a writer for the specified file
func (s *LocalFileStorage) GetWriter(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Remove deletes the file if it exists
func (s *LocalFileStorage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
