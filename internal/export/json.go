// Package export converts grid snapshots to other formats.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/csve/internal/grid"
)

// Options controls JSON output.
type Options struct {
	// Pretty indents the output.
	Pretty bool
}

// JSON converts rows to a JSON array of objects. The first row is the
// header; every following row becomes one object keyed by header. Blank
// headers are replaced by the column letter, and repeated headers get a
// numeric suffix ("name", "name_2"). Values are always strings.
func JSON(rows [][]string, opts ...Options) ([]byte, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}

	out := []byte("[]")
	if len(rows) == 0 {
		return out, nil
	}

	keys := HeaderKeys(rows[0])
	for i, row := range rows[1:] {
		obj := []byte("{}")
		for c, key := range keys {
			value := ""
			if c < len(row) {
				value = row[c]
			}
			var err error
			obj, err = sjson.SetBytes(obj, escapePath(key), value)
			if err != nil {
				return nil, fmt.Errorf("export row %d column %s: %w", i+2, grid.ColumnName(c), err)
			}
		}
		var err error
		out, err = sjson.SetRawBytes(out, "-1", obj)
		if err != nil {
			return nil, fmt.Errorf("export row %d: %w", i+2, err)
		}
	}

	if opt.Pretty {
		out = pretty.Pretty(out)
	}
	return out, nil
}

// HeaderKeys returns the object keys derived from a header row.
func HeaderKeys(header []string) []string {
	keys := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for c, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = grid.ColumnName(c)
		}
		key := base
		for n := 2; used[key]; n++ {
			key = base + "_" + strconv.Itoa(n)
		}
		used[key] = true
		keys[c] = key
	}
	return keys
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', ':':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
