package storage

import "io"

// Storage defines the interface for handling episode files on their way to
// and in their final resting place.
type Storage interface {
	// EpisodePath returns the full path for an episode file with the given
	// base name and extension.
	EpisodePath(baseName, ext string) string

	FileExists(path string) bool

	GetWriter(path string) (io.WriteCloser, error)

	Remove(path string) error
}
