package keymap

import "github.com/dshills/csve/internal/action"

// DefaultBindings returns the built-in key bindings, action to key specs.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		action.FileNew:    {"Ctrl+N"},
		action.FileOpen:   {"Ctrl+O"},
		action.FileSave:   {"Ctrl+S"},
		action.FileSaveAs: {"Ctrl+W"},
		action.FileReload: {"F5"},
		action.FileExport: {"Ctrl+E"},

		action.GridAddRow:    {"Ctrl+R"},
		action.GridAddColumn: {"Ctrl+L"},

		action.CellEdit:  {"Enter", "F2"},
		action.CellClear: {"Delete", "Backspace"},

		action.CursorUp:       {"Up", "k"},
		action.CursorDown:     {"Down", "j"},
		action.CursorLeft:     {"Left", "h"},
		action.CursorRight:    {"Right", "l", "Tab"},
		action.CursorHome:     {"Home", "0"},
		action.CursorEnd:      {"End", "$"},
		action.CursorTop:      {"g"},
		action.CursorBottom:   {"G"},
		action.CursorPageUp:   {"PageUp", "Ctrl+B"},
		action.CursorPageDown: {"PageDown", "Ctrl+F"},

		action.AppCommand: {":"},
		action.AppQuit:    {"Ctrl+Q"},
	}
}

// Default returns a keymap holding DefaultBindings.
func Default() *Keymap {
	km := New()
	if err := km.BindAll(DefaultBindings()); err != nil {
		panic("keymap: invalid default bindings: " + err.Error())
	}
	return km
}

// Load returns the default keymap overlaid with overrides.
func Load(overrides map[string][]string) (*Keymap, error) {
	km := Default()
	if err := km.BindAll(overrides); err != nil {
		return nil, err
	}
	return km, nil
}
