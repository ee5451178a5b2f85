package script

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/csve/internal/event"
)

// install registers the grid and csve globals and replaces print.
// Rows and columns are 1-based on the Lua side.
func (e *Engine) install() {
	L := e.L

	L.SetGlobal("grid", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"rows":       e.gridRows,
		"cols":       e.gridCols,
		"get":        e.gridGet,
		"set":        e.gridSet,
		"row":        e.gridRow,
		"add_row":    e.gridAddRow,
		"add_column": e.gridAddColumn,
		"path":       e.gridPath,
	}))

	L.SetGlobal("csve", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"on":      e.on,
		"off":     e.off,
		"message": e.luaMessage,
	}))

	L.SetGlobal("print", L.NewFunction(e.print))
}

func (e *Engine) gridRows(L *lua.LState) int {
	L.Push(lua.LNumber(e.grid.RowCount()))
	return 1
}

func (e *Engine) gridCols(L *lua.LState) int {
	L.Push(lua.LNumber(e.grid.ColumnCount()))
	return 1
}

func (e *Engine) gridGet(L *lua.LState) int {
	row, col := L.CheckInt(1), L.CheckInt(2)
	v, err := e.grid.Cell(row-1, col-1)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(v))
	return 1
}

// gridSet accepts strings and numbers; nil clears the cell.
func (e *Engine) gridSet(L *lua.LState) int {
	row, col := L.CheckInt(1), L.CheckInt(2)
	value := ""
	if L.Get(3) != lua.LNil {
		value = L.CheckString(3)
	}
	if err := e.grid.SetCell(row-1, col-1, value); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (e *Engine) gridRow(L *lua.LState) int {
	row := L.CheckInt(1)
	t := L.CreateTable(e.grid.ColumnCount(), 0)
	for c := range e.grid.ColumnCount() {
		v, err := e.grid.Cell(row-1, c)
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		t.RawSetInt(c+1, lua.LString(v))
	}
	L.Push(t)
	return 1
}

func (e *Engine) gridAddRow(L *lua.LState) int {
	e.grid.AddRow()
	L.Push(lua.LNumber(e.grid.RowCount()))
	return 1
}

func (e *Engine) gridAddColumn(L *lua.LState) int {
	e.grid.AddColumn()
	L.Push(lua.LNumber(e.grid.ColumnCount()))
	return 1
}

func (e *Engine) gridPath(L *lua.LState) int {
	if p := e.grid.Path(); p != "" {
		L.Push(lua.LString(p))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// on subscribes fn to a topic pattern and returns the subscription id.
// Handlers receive one table describing the event.
func (e *Engine) on(L *lua.LState) int {
	pattern := event.Topic(L.CheckString(1))
	fn := L.CheckFunction(2)
	if e.bus == nil {
		L.RaiseError("events are not available")
		return 0
	}

	sub, err := e.bus.Subscribe(pattern, func(ctx context.Context, ev event.Event) error {
		if e.closed {
			return nil
		}
		_, err := e.call(ctx, string(ev.Topic), fn, e.eventTable(ev))
		return err
	})
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	e.subs[sub.ID] = sub

	L.Push(lua.LString(sub.ID))
	return 1
}

func (e *Engine) off(L *lua.LState) int {
	id := L.CheckString(1)
	sub, ok := e.subs[id]
	if ok && e.bus != nil {
		delete(e.subs, id)
		ok = e.bus.Unsubscribe(sub) == nil
	}
	L.Push(lua.LBool(ok))
	return 1
}

func (e *Engine) luaMessage(L *lua.LState) int {
	e.emit(L.CheckString(1))
	return 0
}

func (e *Engine) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	e.emit(strings.Join(parts, "\t"))
	return 0
}

func (e *Engine) emit(msg string) {
	if e.message != nil {
		e.message(msg)
	}
}

func (e *Engine) eventTable(ev event.Event) *lua.LTable {
	t := e.L.NewTable()
	t.RawSetString("topic", lua.LString(ev.Topic))
	t.RawSetString("source", lua.LString(ev.Source))

	switch p := ev.Payload.(type) {
	case event.CellPayload:
		t.RawSetString("row", lua.LNumber(p.Row+1))
		t.RawSetString("col", lua.LNumber(p.Col+1))
		t.RawSetString("old", lua.LString(p.Old))
		t.RawSetString("new", lua.LString(p.New))
	case event.ShapePayload:
		t.RawSetString("rows", lua.LNumber(p.Rows))
		t.RawSetString("cols", lua.LNumber(p.Cols))
	case event.FilePayload:
		t.RawSetString("path", lua.LString(p.Path))
		t.RawSetString("rows", lua.LNumber(p.Rows))
		t.RawSetString("cols", lua.LNumber(p.Cols))
	}
	return t
}
