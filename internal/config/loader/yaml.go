package loader

import (
	"gopkg.in/yaml.v3"

	"github.com/dshills/csve/internal/vfs"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   vfs.VFS
	path string
}

// NewYAMLLoader creates a YAML loader for path.
func NewYAMLLoader(fsys vfs.VFS, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path}
}

// Load reads and parses the file.
func (l *YAMLLoader) Load() (map[string]any, error) {
	data, err := readConfig(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseYAML(l.path, data)
}

// ParseYAML parses YAML data into a map. An empty document yields an empty
// map.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}
