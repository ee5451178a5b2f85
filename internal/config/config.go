package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/csve/internal/config/loader"
	"github.com/dshills/csve/internal/vfs"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CSVE_"

// candidate file names, in lookup order.
var configNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config is the resolved csve configuration.
type Config struct {
	Editor EditorConfig        `toml:"editor" yaml:"editor"`
	CSV    CSVConfig           `toml:"csv" yaml:"csv"`
	Keys   map[string]KeySpecs `toml:"keys" yaml:"keys"`
	Theme  ThemeConfig         `toml:"theme" yaml:"theme"`
	Log    LogConfig           `toml:"log" yaml:"log"`
	Script ScriptConfig        `toml:"script" yaml:"script"`
	Export ExportConfig        `toml:"export" yaml:"export"`

	// Path is the file the configuration was read from, empty when only
	// defaults and environment were used.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ColumnWidth:    12,
			MinColumnWidth: 3,
			MaxColumnWidth: 40,
			ConfirmDiscard: true,
			MoveAfterEdit:  true,
			WatchFile:      true,
		},
		CSV: CSVConfig{
			Delimiter:   ",",
			Encoding:    "utf-8",
			StrictShape: true,
		},
		Keys: make(map[string]KeySpecs),
		Theme: ThemeConfig{
			HeaderFG:  "#e5c07b",
			GutterFG:  "#7f848e",
			CursorFG:  "#282c34",
			CursorBG:  "#61afef",
			StatusFG:  "#282c34",
			StatusBG:  "#abb2bf",
			MessageFG: "#98c379",
			ErrorFG:   "#e06c75",
		},
		Log: LogConfig{
			Level: "info",
		},
		Script: ScriptConfig{
			Enabled: true,
		},
	}
}

// UserConfigDir returns the csve directory under the user config directory.
func UserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "csve")
}

// FindConfigFile returns the first existing config file in dir, or "".
func FindConfigFile(fsys vfs.VFS, dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if fsys.Exists(path) {
			return path
		}
	}
	return ""
}

// Options controls Load.
type Options struct {
	// FS reads the config file. Defaults to the OS file system.
	FS vfs.VFS

	// Path is an explicit config file. When empty the user config directory
	// is searched and a missing file means defaults.
	Path string

	// Dir overrides the user config directory searched when Path is empty.
	Dir string

	// Environ supplies environment variables. Defaults to os.Environ.
	Environ func() []string
}

// Load resolves defaults, the config file and environment overrides, then
// validates the result.
func Load(opts Options) (*Config, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = vfs.NewOSFS()
	}

	path := opts.Path
	if path == "" {
		dir := opts.Dir
		if dir == "" {
			dir = UserConfigDir()
		}
		path = FindConfigFile(fsys, dir)
	} else if !fsys.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	overlay := make(map[string]any)
	if path != "" {
		l, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		fileConfig, err := l.Load()
		if err != nil {
			return nil, err
		}
		overlay = loader.DeepMerge(overlay, fileConfig)
	}

	env := loader.NewEnvLoader(EnvPrefix)
	if opts.Environ != nil {
		env.WithEnviron(opts.Environ)
	}
	envConfig, err := env.Load()
	if err != nil {
		return nil, err
	}
	overlay = loader.DeepMerge(overlay, envConfig)

	source := path
	if source == "" {
		source = "<environment>"
	}
	cfg, err := decode(source, overlay)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies overlay on top of the defaults. Settings absent from overlay
// keep their default value; unknown settings are an error.
func decode(source string, overlay map[string]any) (*Config, error) {
	data, err := yaml.Marshal(overlay)
	if err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if cfg.Keys == nil {
		cfg.Keys = make(map[string]KeySpecs)
	}
	return cfg, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting and returns the joined *ValidationErrors.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	e := c.Editor
	if e.MinColumnWidth < 1 {
		add("editor.min_column_width", "must be at least 1", e.MinColumnWidth)
	}
	if e.MaxColumnWidth < e.MinColumnWidth {
		add("editor.max_column_width", "must not be less than min_column_width", e.MaxColumnWidth)
	}
	if e.ColumnWidth < e.MinColumnWidth || e.ColumnWidth > e.MaxColumnWidth {
		add("editor.column_width", fmt.Sprintf("must be between %d and %d", e.MinColumnWidth, e.MaxColumnWidth), e.ColumnWidth)
	}

	if _, err := c.CSV.Format(); err != nil {
		add("csv", err.Error(), c.CSV.Delimiter+"/"+c.CSV.Encoding)
	}

	for action, specs := range c.Keys {
		if len(specs) == 0 {
			add("keys."+action, "needs at least one key", specs)
		}
	}

	if _, err := c.Theme.Colors(); err != nil {
		add("theme", err.Error(), nil)
	}

	if !logLevels[strings.ToLower(c.Log.Level)] {
		add("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}

	return errors.Join(errs...)
}

// ScriptPath returns the init script path resolved against the config file
// directory, or "" when none is configured.
func (c *Config) ScriptPath() string {
	p := c.Script.Init
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
