// Package action defines named editor operations and routes them to
// handlers.
//
// Actions come from three places: key bindings resolved by the keymap,
// commands typed on the ":" prompt (see ParseCommand), and scripts. All of
// them are executed through a Dispatcher on the application loop.
package action

import "strings"

// Action names.
const (
	FileNew    = "file.new"
	FileOpen   = "file.open"
	FileSave   = "file.save"
	FileSaveAs = "file.saveAs"
	FileReload = "file.reload"
	FileExport = "file.export"

	GridAddRow    = "grid.addRow"
	GridAddColumn = "grid.addColumn"

	CellSet   = "cell.set"
	CellEdit  = "cell.edit"
	CellClear = "cell.clear"

	CursorUp       = "cursor.up"
	CursorDown     = "cursor.down"
	CursorLeft     = "cursor.left"
	CursorRight    = "cursor.right"
	CursorHome     = "cursor.home"
	CursorEnd      = "cursor.end"
	CursorTop      = "cursor.top"
	CursorBottom   = "cursor.bottom"
	CursorPageUp   = "cursor.pageUp"
	CursorPageDown = "cursor.pageDown"

	ScriptRun = "script.run"

	AppCommand = "app.command"
	AppQuit    = "app.quit"
)

// Args carries the parameters of an action. Each action reads only the
// fields it needs.
type Args struct {
	// Path is the target file for file actions.
	Path string

	// Row and Col address a cell (0-based) for cell actions.
	Row, Col int

	// Value is the new cell content for cell.set.
	Value string

	// Code is the Lua source for script.run.
	Code string

	// Force skips the discard confirmation.
	Force bool
}

// Action is a named operation with its arguments.
type Action struct {
	Name   string
	Args   Args
	Source string
}

// New creates an action with no arguments.
func New(name string) Action {
	return Action{Name: name}
}

// WithPath creates an action targeting path.
func WithPath(name, path string) Action {
	return Action{Name: name, Args: Args{Path: path}}
}

// SetCell creates a cell.set action.
func SetCell(row, col int, value string) Action {
	return Action{Name: CellSet, Args: Args{Row: row, Col: col, Value: value}}
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	ns, _, _ := strings.Cut(a.Name, ".")
	return ns
}

// Discards reports whether the action replaces the current document
// contents without saving them.
func (a Action) Discards() bool {
	switch a.Name {
	case FileNew, FileOpen, FileReload, AppQuit:
		return !a.Args.Force
	}
	return false
}
