package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/csve/internal/vfs"
)

// TOMLLoader loads configuration from TOML files.
type TOMLLoader struct {
	fs   vfs.VFS
	path string
}

// NewTOMLLoader creates a TOML loader for path.
func NewTOMLLoader(fsys vfs.VFS, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load reads and parses the file.
func (l *TOMLLoader) Load() (map[string]any, error) {
	data, err := readConfig(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseTOML(l.path, data)
}

// ParseTOML parses TOML data into a map. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}
