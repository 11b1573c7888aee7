package filesystem

import (
	"io/fs"
	"os"
)

// FileSystem is the subset of filesystem operations needed to inspect and prepare working copies.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// OSFileSystem is the FileSystem backed by package os.
type OSFileSystem struct{}

// Stat reports metadata for path, following symlinks.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll creates path and any missing parents.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}
