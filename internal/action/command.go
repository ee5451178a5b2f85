package action

import (
	"errors"
	"fmt"
	"strings"
)

// Command errors.
var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandArgs    = errors.New("wrong number of arguments")
)

// commandSpec describes one ":" command. Commands take at most one
// argument; the whole remainder of the line is that argument, so paths may
// contain spaces.
type commandSpec struct {
	action   string
	argument bool
	required bool
	// code stores the argument as Lua source instead of a path.
	code bool
}

var commands = map[string]commandSpec{
	"w":      {action: FileSave, argument: true},
	"write":  {action: FileSave, argument: true},
	"saveas": {action: FileSaveAs, argument: true, required: true},
	"e":      {action: FileOpen, argument: true},
	"edit":   {action: FileOpen, argument: true},
	"open":   {action: FileOpen, argument: true},
	"reload": {action: FileReload},
	"new":    {action: FileNew},
	"addrow": {action: GridAddRow},
	"ar":     {action: GridAddRow},
	"addcol": {action: GridAddColumn},
	"ac":     {action: GridAddColumn},
	"export": {action: FileExport, argument: true},
	"lua":    {action: ScriptRun, argument: true, required: true, code: true},
	"q":      {action: AppQuit},
	"quit":   {action: AppQuit},
}

// ParseCommand parses a line typed at the ":" prompt into an action.
// A trailing "!" on the command name sets Force, so "q!" quits without
// confirmation and "e!" reloads the current file.
func ParseCommand(line string) (Action, error) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if line == "" {
		return Action{}, ErrEmptyCommand
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	force := false
	if strings.HasSuffix(name, "!") {
		force = true
		name = strings.TrimSuffix(name, "!")
	}

	spec, ok := commands[name]
	if !ok {
		return Action{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	switch {
	case rest != "" && !spec.argument:
		return Action{}, fmt.Errorf("%s: %w", name, ErrCommandArgs)
	case rest == "" && spec.required:
		return Action{}, fmt.Errorf("%s: %w", name, ErrCommandArgs)
	}

	a := Action{Name: spec.action, Args: Args{Force: force}, Source: "command"}
	if spec.code {
		a.Args.Code = rest
		return a, nil
	}
	a.Args.Path = rest

	switch {
	case a.Name == FileSave && a.Args.Path != "":
		a.Name = FileSaveAs
	case a.Name == FileOpen && a.Args.Path == "" && force:
		a.Name = FileReload
	}
	return a, nil
}
