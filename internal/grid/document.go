package grid

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/csve/internal/csvio"
	"github.com/dshills/csve/internal/event"
	"github.com/dshills/csve/internal/vfs"
)

const defaultPerm = 0o644

// Document is a grid of string cells backed by an optional CSV file.
type Document struct {
	fs        vfs.VFS
	publisher event.Publisher
	onError   func(topic event.Topic, err error)

	// defaults seeds the format of new documents and the parse options used
	// by Load.
	defaults csvio.Format

	rows     [][]string
	cols     int
	path     string
	format   csvio.Format
	modified bool
}

// Option configures a Document.
type Option func(*Document)

// WithFS sets the file system used for load and save.
func WithFS(fsys vfs.VFS) Option {
	return func(d *Document) {
		if fsys != nil {
			d.fs = fsys
		}
	}
}

// WithPublisher sets the publisher that receives change events.
func WithPublisher(p event.Publisher) Option {
	return func(d *Document) {
		d.publisher = p
	}
}

// WithFormat sets the default delimiter and parse options.
func WithFormat(f csvio.Format) Option {
	return func(d *Document) {
		d.defaults = f
	}
}

// WithPublishErrorHandler sets a callback for errors returned by event
// handlers. Handler failures never fail the document operation itself.
func WithPublishErrorHandler(fn func(topic event.Topic, err error)) Option {
	return func(d *Document) {
		d.onError = fn
	}
}

// NewDocument creates an empty, path-less document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		fs:       vfs.NewOSFS(),
		defaults: csvio.DefaultFormat(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.format = d.defaults
	return d
}

// Load replaces the document with the contents of the CSV file at path.
// On failure the document is left exactly as it was.
func (d *Document) Load(path string) error {
	absPath, err := d.fs.Abs(path)
	if err != nil {
		return &FileError{Op: "load", Path: path, Err: err}
	}

	content, err := d.fs.ReadFile(absPath)
	if err != nil {
		return &FileError{Op: "load", Path: absPath, Err: err}
	}

	parse := d.defaults
	parse.Comma = csvio.DelimiterForPath(absPath, d.defaults.Comma)
	rows, format, err := csvio.Decode(content, parse)
	if err != nil {
		var pe *csvio.ParseError
		if errors.As(err, &pe) {
			pe.Path = absPath
		}
		return err
	}

	d.rows = rows
	d.cols = csvio.Width(rows)
	d.path = absPath
	d.format = format
	d.modified = false

	d.publish(event.TopicDocumentLoaded, event.FilePayload{Path: absPath, Rows: len(rows), Cols: d.cols})
	return nil
}

// Reload re-reads the backing file.
func (d *Document) Reload() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.Load(d.path)
}

// Save writes the grid to the backing file. It returns ErrNoPath when the
// document has none; the caller is expected to ask for one and call SaveAs.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	if err := d.write(d.path, d.format); err != nil {
		return err
	}
	d.modified = false

	d.publish(event.TopicDocumentSaved, event.FilePayload{Path: d.path, Rows: len(d.rows), Cols: d.cols})
	return nil
}

// SaveAs writes the grid to path and makes path the backing file.
// The delimiter follows the new file's extension; encoding and line endings
// are kept.
func (d *Document) SaveAs(path string) error {
	absPath, err := d.fs.Abs(path)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	format := d.format
	format.Comma = csvio.DelimiterForPath(absPath, d.defaults.Comma)
	if err := d.write(absPath, format); err != nil {
		return err
	}

	d.path = absPath
	d.format = format
	d.modified = false

	d.publish(event.TopicDocumentSaved, event.FilePayload{Path: absPath, Rows: len(d.rows), Cols: d.cols})
	return nil
}

func (d *Document) write(path string, format csvio.Format) error {
	data, err := csvio.Encode(d.rows, format)
	if err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}

	perm := vfs.FileMode(d.fs, path, defaultPerm)
	if err := vfs.WriteFileAtomic(d.fs, path, data, perm); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Reset discards the grid and the file path, leaving an empty untitled
// document. Unsaved changes are dropped without confirmation.
func (d *Document) Reset() {
	d.rows = nil
	d.cols = 0
	d.path = ""
	d.format = d.defaults
	d.modified = false

	d.publish(event.TopicDocumentReset, event.ShapePayload{})
}

// AddRow appends a row of empty cells. A grid with no columns gets one
// column first, so a row never has zero cells.
func (d *Document) AddRow() {
	if d.cols == 0 {
		d.cols = 1
	}
	d.rows = append(d.rows, make([]string, d.cols))
	d.modified = true

	d.publish(event.TopicRowAdded, event.ShapePayload{Rows: len(d.rows), Cols: d.cols})
}

// AddColumn appends an empty cell to every row. With zero rows the new
// width is remembered and applies to rows added later.
func (d *Document) AddColumn() {
	for i := range d.rows {
		d.rows[i] = append(d.rows[i], "")
	}
	d.cols++
	d.modified = true

	d.publish(event.TopicColumnAdded, event.ShapePayload{Rows: len(d.rows), Cols: d.cols})
}

// SetCell overwrites the cell at (row, col). Setting a cell to its current
// value is a no-op.
func (d *Document) SetCell(row, col int, value string) error {
	if err := d.checkRange(row, col); err != nil {
		return err
	}

	old := d.rows[row][col]
	if old == value {
		return nil
	}
	d.rows[row][col] = value
	d.modified = true

	d.publish(event.TopicCellChanged, event.CellPayload{Row: row, Col: col, Old: old, New: value})
	return nil
}

// Cell returns the value at (row, col).
func (d *Document) Cell(row, col int) (string, error) {
	if err := d.checkRange(row, col); err != nil {
		return "", err
	}
	return d.rows[row][col], nil
}

func (d *Document) checkRange(row, col int) error {
	if row < 0 || row >= len(d.rows) || col < 0 || col >= d.cols {
		return fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfRange, row, col, len(d.rows), d.cols)
	}
	return nil
}

// Snapshot returns a deep copy of the grid.
func (d *Document) Snapshot() [][]string {
	out := make([][]string, len(d.rows))
	for i, row := range d.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// RowCount returns the number of rows.
func (d *Document) RowCount() int { return len(d.rows) }

// ColumnCount returns the grid width.
func (d *Document) ColumnCount() int { return d.cols }

// Path returns the backing file path, empty for an untitled document.
func (d *Document) Path() string { return d.path }

// Format returns the on-disk format used by Save.
func (d *Document) Format() csvio.Format { return d.format }

// IsModified reports whether the grid changed since the last load, save
// or reset.
func (d *Document) IsModified() bool { return d.modified }

// Name returns the display name.
func (d *Document) Name() string {
	if d.path == "" {
		return "Untitled"
	}
	return filepath.Base(d.path)
}

func (d *Document) publish(topic event.Topic, payload any) {
	if d.publisher == nil {
		return
	}
	err := d.publisher.Publish(context.Background(), event.New(topic, payload, "grid"))
	if err != nil && d.onError != nil {
		d.onError(topic, err)
	}
}
