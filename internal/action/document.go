package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/csve/internal/export"
	"github.com/dshills/csve/internal/grid"
	"github.com/dshills/csve/internal/vfs"
)

const exportPerm = 0o644

// DocumentHandler executes the file, grid and cell actions that operate on
// a grid.Document alone.
type DocumentHandler struct {
	doc *grid.Document
	fs  vfs.VFS

	// PrettyExport indents exported JSON.
	PrettyExport bool
}

// NewDocumentHandler creates a handler for doc. Exports are written
// through fsys.
func NewDocumentHandler(doc *grid.Document, fsys vfs.VFS) *DocumentHandler {
	if fsys == nil {
		fsys = vfs.NewOSFS()
	}
	return &DocumentHandler{doc: doc, fs: fsys}
}

// Register installs the handler on d for every action it serves.
func (h *DocumentHandler) Register(d *Dispatcher) {
	for _, name := range h.Actions() {
		d.Register(name, h)
	}
}

// Actions returns the action names served by the handler.
func (h *DocumentHandler) Actions() []string {
	return []string{
		FileNew, FileOpen, FileSave, FileSaveAs, FileReload, FileExport,
		GridAddRow, GridAddColumn, CellSet,
	}
}

// Handle implements Handler.
func (h *DocumentHandler) Handle(_ context.Context, a Action) Result {
	switch a.Name {
	case FileNew:
		h.doc.Reset()
		return Successf("new grid")

	case FileOpen:
		if a.Args.Path == "" {
			return NeedPath("open: ")
		}
		if err := h.doc.Load(a.Args.Path); err != nil {
			return Error(err)
		}
		return h.loaded("opened")

	case FileReload:
		if h.doc.Path() == "" {
			return Error(grid.ErrNoPath)
		}
		if err := h.doc.Reload(); err != nil {
			return Error(err)
		}
		return h.loaded("reloaded")

	case FileSave:
		// A path answered at the save prompt makes this a save-as.
		if a.Args.Path != "" {
			return h.saveAs(a.Args.Path)
		}
		if err := h.doc.Save(); err != nil {
			if errors.Is(err, grid.ErrNoPath) {
				return NeedPath("save as: ")
			}
			return Error(err)
		}
		return h.saved()

	case FileSaveAs:
		if a.Args.Path == "" {
			return NeedPath("save as: ")
		}
		return h.saveAs(a.Args.Path)

	case FileExport:
		if a.Args.Path == "" {
			return NeedPath("export to: ")
		}
		return h.export(a.Args.Path)

	case GridAddRow:
		h.doc.AddRow()
		return Successf("added row %d", h.doc.RowCount())

	case GridAddColumn:
		h.doc.AddColumn()
		return Successf("added column %s", grid.ColumnName(h.doc.ColumnCount()-1))

	case CellSet:
		if err := h.doc.SetCell(a.Args.Row, a.Args.Col, a.Args.Value); err != nil {
			return Error(err)
		}
		return Success()
	}
	return Error(fmt.Errorf("%w: %s", ErrNoHandler, a.Name))
}

func (h *DocumentHandler) loaded(verb string) Result {
	return Successf("%s %s (%d×%d)", verb, h.doc.Name(), h.doc.RowCount(), h.doc.ColumnCount())
}

func (h *DocumentHandler) saveAs(path string) Result {
	if err := h.doc.SaveAs(path); err != nil {
		return Error(err)
	}
	return h.saved()
}

func (h *DocumentHandler) saved() Result {
	return Successf("wrote %s (%d×%d)", h.doc.Path(), h.doc.RowCount(), h.doc.ColumnCount())
}

func (h *DocumentHandler) export(path string) Result {
	data, err := export.JSON(h.doc.Snapshot(), export.Options{Pretty: h.PrettyExport})
	if err != nil {
		return Error(err)
	}
	if err := vfs.WriteFileAtomic(h.fs, path, data, exportPerm); err != nil {
		return Error(&grid.FileError{Op: "export", Path: path, Err: err})
	}
	rows := h.doc.RowCount() - 1
	if rows < 0 {
		rows = 0
	}
	return Successf("exported %d records to %s", rows, path)
}
