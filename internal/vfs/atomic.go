package vfs

import (
	"fmt"
	"io/fs"

	"github.com/google/uuid"
)

// WriteFileAtomic writes data to a temp file next to path and renames it
// over path. On failure the target is left as it was and the temp file is
// removed.
func WriteFileAtomic(fsys VFS, path string, data []byte, perm fs.FileMode) error {
	tempPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := fsys.WriteFile(tempPath, data, perm); err != nil {
		// A write that fails partway can leave a truncated temp file.
		_ = fsys.Remove(tempPath)
		return err
	}

	if err := fsys.Rename(tempPath, path); err != nil {
		_ = fsys.Remove(tempPath)
		return err
	}
	return nil
}

// FileMode returns the mode of an existing file at path, or def when the file
// does not exist or cannot be inspected.
func FileMode(fsys VFS, path string, def fs.FileMode) fs.FileMode {
	info, err := fsys.Stat(path)
	if err != nil || info.IsDir() {
		return def
	}
	return info.Mode().Perm()
}
