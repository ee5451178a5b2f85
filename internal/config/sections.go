package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/dshills/csve/internal/csvio"
)

// EditorConfig holds grid editing settings.
type EditorConfig struct {
	// ColumnWidth is the default displayed column width in cells.
	ColumnWidth int `toml:"column_width" yaml:"column_width"`

	// MinColumnWidth and MaxColumnWidth bound per-column widths.
	MinColumnWidth int `toml:"min_column_width" yaml:"min_column_width"`
	MaxColumnWidth int `toml:"max_column_width" yaml:"max_column_width"`

	// ConfirmDiscard asks before New/Open/Quit drop unsaved changes.
	ConfirmDiscard bool `toml:"confirm_discard" yaml:"confirm_discard"`

	// MoveAfterEdit moves the cursor down after a cell edit is committed.
	MoveAfterEdit bool `toml:"move_after_edit" yaml:"move_after_edit"`

	// WatchFile reports changes made to the open file by other programs.
	WatchFile bool `toml:"watch_file" yaml:"watch_file"`
}

// CSVConfig holds the format used for new documents and the parse options
// used when opening files.
type CSVConfig struct {
	// Delimiter is a single character, or "tab".
	Delimiter string `toml:"delimiter" yaml:"delimiter"`

	// Encoding is the encoding of new documents.
	Encoding string `toml:"encoding" yaml:"encoding"`

	// StrictShape rejects files whose rows have differing field counts.
	StrictShape bool `toml:"strict_shape" yaml:"strict_shape"`

	// LazyQuotes tolerates stray quotes in fields.
	LazyQuotes bool `toml:"lazy_quotes" yaml:"lazy_quotes"`

	// CRLF writes "\r\n" line endings for new documents.
	CRLF bool `toml:"crlf" yaml:"crlf"`

	// BOM writes a byte order mark for new documents.
	BOM bool `toml:"bom" yaml:"bom"`
}

// Format converts the section to a csvio.Format.
func (c CSVConfig) Format() (csvio.Format, error) {
	comma, err := csvio.ParseDelimiter(c.Delimiter)
	if err != nil {
		return csvio.Format{}, err
	}
	enc, err := csvio.ParseEncoding(c.Encoding)
	if err != nil {
		return csvio.Format{}, err
	}
	return csvio.Format{
		Comma:      comma,
		Encoding:   enc,
		BOM:        c.BOM,
		CRLF:       c.CRLF,
		LazyQuotes: c.LazyQuotes,
		Strict:     c.StrictShape,
	}, nil
}

// KeySpecs is one or more key specs bound to an action. In a config file it
// may be written as a single string or a list.
type KeySpecs []string

// UnmarshalYAML accepts a scalar or a sequence.
func (k *KeySpecs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*k = KeySpecs{value.Value}
		return nil
	case yaml.SequenceNode:
		var specs []string
		if err := value.Decode(&specs); err != nil {
			return err
		}
		*k = specs
		return nil
	default:
		return fmt.Errorf("line %d: key binding must be a string or list of strings", value.Line)
	}
}

// ThemeConfig holds hex colors ("#rrggbb") for the grid view. An empty value
// uses the terminal default.
type ThemeConfig struct {
	HeaderFG  string `toml:"header_fg" yaml:"header_fg"`
	HeaderBG  string `toml:"header_bg" yaml:"header_bg"`
	GutterFG  string `toml:"gutter_fg" yaml:"gutter_fg"`
	CellFG    string `toml:"cell_fg" yaml:"cell_fg"`
	CursorFG  string `toml:"cursor_fg" yaml:"cursor_fg"`
	CursorBG  string `toml:"cursor_bg" yaml:"cursor_bg"`
	StatusFG  string `toml:"status_fg" yaml:"status_fg"`
	StatusBG  string `toml:"status_bg" yaml:"status_bg"`
	MessageFG string `toml:"message_fg" yaml:"message_fg"`
	ErrorFG   string `toml:"error_fg" yaml:"error_fg"`
}

// Entries returns the theme settings keyed by name.
func (t ThemeConfig) Entries() map[string]string {
	return map[string]string{
		"header_fg":  t.HeaderFG,
		"header_bg":  t.HeaderBG,
		"gutter_fg":  t.GutterFG,
		"cell_fg":    t.CellFG,
		"cursor_fg":  t.CursorFG,
		"cursor_bg":  t.CursorBG,
		"status_fg":  t.StatusFG,
		"status_bg":  t.StatusBG,
		"message_fg": t.MessageFG,
		"error_fg":   t.ErrorFG,
	}
}

// Colors parses the non-empty theme entries.
func (t ThemeConfig) Colors() (map[string]colorful.Color, error) {
	out := make(map[string]colorful.Color)
	for name, hex := range t.Entries() {
		if hex == "" {
			continue
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("theme.%s: %w", name, err)
		}
		out[name] = c
	}
	return out, nil
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is the log file path. Empty disables logging; the terminal
	// belongs to the UI.
	File string `toml:"file" yaml:"file"`
}

// ScriptConfig holds Lua scripting settings.
type ScriptConfig struct {
	// Enabled turns the Lua engine on.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Init is a Lua file run at startup. Relative paths resolve against the
	// config file's directory.
	Init string `toml:"init" yaml:"init"`
}

// ExportConfig holds settings for file.export.
type ExportConfig struct {
	// Pretty indents exported JSON.
	Pretty bool `toml:"pretty" yaml:"pretty"`
}
