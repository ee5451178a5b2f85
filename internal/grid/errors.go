package grid

import (
	"errors"
	"fmt"
)

// Document errors.
var (
	// ErrNoPath indicates Save was called on a document that has never been
	// opened from or saved to a file. The caller should obtain a path and
	// call SaveAs.
	ErrNoPath = errors.New("document has no file path")

	// ErrOutOfRange indicates a cell coordinate outside the grid.
	ErrOutOfRange = errors.New("cell out of range")
)

// FileError reports a failure to read or write the backing file.
type FileError struct {
	Op   string // "load", "save" or "export"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
