package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format describes how a grid is laid out on disk.
type Format struct {
	// Comma is the field delimiter.
	Comma rune

	// Encoding is the character encoding of the file.
	Encoding Encoding

	// BOM records whether the file starts with a byte order mark.
	BOM bool

	// CRLF selects "\r\n" record terminators instead of "\n".
	CRLF bool

	// LazyQuotes accepts a quote appearing in an unquoted field and a
	// non-doubled quote in a quoted field.
	LazyQuotes bool

	// Strict rejects records whose field count differs from the first
	// record. When false, short records are padded with empty cells.
	Strict bool
}

// DefaultFormat returns comma-separated UTF-8 with "\n" line endings and
// strict shape checking.
func DefaultFormat() Format {
	return Format{
		Comma:    ',',
		Encoding: EncodingUTF8,
		Strict:   true,
	}
}

// ParseError reports malformed CSV content.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", where, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses file content into rows. The returned Format carries the
// detected encoding, BOM and line ending on top of f's parse options.
func Decode(content []byte, f Format) ([][]string, Format, error) {
	if f.Comma == 0 {
		f.Comma = ','
	}

	enc, bom := DetectEncoding(content)
	f.Encoding, f.BOM = enc, bom

	text, err := toUTF8(content, enc, bom)
	if err != nil {
		return nil, f, &ParseError{Err: err}
	}
	f.CRLF = bytes.Contains(text, []byte("\r\n"))

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = f.Comma
	r.LazyQuotes = f.LazyQuotes
	if !f.Strict {
		r.FieldsPerRecord = -1
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, f, wrapParseError(err)
		}
		rows = append(rows, record)
	}

	if !f.Strict {
		rows = Pad(rows)
	}
	return rows, f, nil
}

func wrapParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Column: pe.Column, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// Encode serializes rows as CSV text in the given format.
//
// A record made of a single empty field is written as `""`; written bare it
// would be an empty line, which readers skip.
//
// Only record terminators follow f.CRLF. Line breaks inside quoted fields
// are written as they are: csv.Writer in CRLF mode drops a lone '\r'.
func Encode(rows [][]string, f Format) ([]byte, error) {
	if f.Comma == 0 {
		f.Comma = ','
	}
	eol := "\n"
	if f.CRLF {
		eol = "\r\n"
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = f.Comma

	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			buf.WriteString(`""` + eol)
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		// The writer ended the record with "\n".
		buf.Truncate(buf.Len() - 1)
		buf.WriteString(eol)
	}

	return fromUTF8(buf.Bytes(), f.Encoding, f.BOM)
}

// Pad extends every row to the length of the longest row.
func Pad(rows [][]string) [][]string {
	width := Width(rows)
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

// Width returns the length of the longest row, zero for no rows.
func Width(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// DelimiterForPath returns tab for .tsv and .tab files and def otherwise.
func DelimiterForPath(path string, def rune) rune {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return '\t'
	}
	return def
}

// ParseDelimiter parses a delimiter setting such as ",", ";", "\t" or "tab".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`, "\t":
		return '\t', nil
	case "":
		return ',', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	switch r := runes[0]; r {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("invalid delimiter %q", s)
	default:
		return r, nil
	}
}
