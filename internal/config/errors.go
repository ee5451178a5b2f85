package config

import (
	"errors"
	"fmt"

	"github.com/dshills/csve/internal/config/loader"
)

var (
	// ErrFileNotFound is returned when a config file named with -config
	// does not exist. A missing default file is not an error.
	ErrFileNotFound = errors.New("config file not found")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ParseError reports a config file or environment value that could not be
// decoded.
type ParseError = loader.ParseError

// ValidationError is one setting with an unusable value. Validate joins
// all of them.
type ValidationError struct {
	// Path is the dotted setting name, e.g. "editor.column_width".
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return e.Path + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
