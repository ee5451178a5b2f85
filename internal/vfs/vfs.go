// Package vfs provides the file system abstraction used to read and write
// documents.
//
// The VFS interface allows swapping the underlying file system, so that
// document load/save paths can be exercised against an in-memory file system
// in tests, including injected write failures.
package vfs

import (
	"io/fs"
	"time"
)

// VFS is the subset of file system operations the editor needs.
type VFS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating or truncating it.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Rename renames (moves) a file, replacing the target if it exists.
	Rename(oldPath, newPath string) error

	// Remove removes a file.
	Remove(path string) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// Abs returns the absolute form of path.
	Abs(path string) (string, error)
}

// FileInfo describes a file.
type FileInfo struct {
	path    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

// NewFileInfo creates a FileInfo.
func NewFileInfo(path string, size int64, mode fs.FileMode, modTime time.Time) FileInfo {
	return FileInfo{path: path, size: size, mode: mode, modTime: modTime}
}

// Path returns the path the info was read from.
func (fi FileInfo) Path() string { return fi.path }

// Size returns the file size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode bits.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir reports whether the info describes a directory.
func (fi FileInfo) IsDir() bool { return fi.mode.IsDir() }
