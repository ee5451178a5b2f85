package renderer

import (
	"strconv"
	"strings"

	"github.com/dshills/csve/internal/grid"
	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/renderer/core"
	"github.com/dshills/csve/internal/renderer/viewport"
)

// Grid is the read side of a document as seen by the view.
type Grid interface {
	RowCount() int
	ColumnCount() int
	Cell(row, col int) (string, error)
}

// Layout controls column sizing.
type Layout struct {
	// ColumnWidth is the narrowest a column is drawn when space allows.
	ColumnWidth int

	// MinColumnWidth is the narrowest partial column drawn at the right
	// edge of the screen.
	MinColumnWidth int

	// MaxColumnWidth caps how far a column widens to fit its content.
	MaxColumnWidth int

	// ScrollMargin is the number of rows kept visible around the cursor.
	ScrollMargin int
}

// DefaultLayout returns the built-in column sizing.
func DefaultLayout() Layout {
	return Layout{ColumnWidth: 12, MinColumnWidth: 3, MaxColumnWidth: 40}
}

const ellipsis = "…"

// GridView draws a grid with column letters across the top, row numbers
// down the left and the cursor cell highlighted. Column widths fit the
// content of the rows on screen, bounded by the layout.
type GridView struct {
	vp        *viewport.Viewport
	layout    Layout
	emptyText string

	// per-render state
	widths map[int]int
	start  int
	end    int
}

// NewGridView creates a grid view.
func NewGridView(layout Layout) *GridView {
	v := &GridView{vp: viewport.New(0)}
	v.SetLayout(layout)
	return v
}

// SetLayout replaces the column sizing.
func (v *GridView) SetLayout(layout Layout) {
	if layout.MinColumnWidth < 1 {
		layout.MinColumnWidth = 1
	}
	if layout.ColumnWidth < layout.MinColumnWidth {
		layout.ColumnWidth = layout.MinColumnWidth
	}
	if layout.MaxColumnWidth < layout.ColumnWidth {
		layout.MaxColumnWidth = layout.ColumnWidth
	}
	v.layout = layout
	v.vp.SetMargin(layout.ScrollMargin)
}

// SetEmptyText sets the hint drawn when the grid has no rows.
func (v *GridView) SetEmptyText(s string) {
	v.emptyText = s
}

// Viewport returns the scroll state.
func (v *GridView) Viewport() *viewport.Viewport {
	return v.vp
}

// PageSize returns the number of grid rows on screen.
func (v *GridView) PageSize() int {
	return max(v.vp.Height(), 1)
}

// Render draws g into area with the cursor at (row, col), scrolling first
// so that the cursor is visible.
func (v *GridView) Render(b backend.Backend, area core.ScreenRect, g Grid, row, col int, theme Theme) {
	b.Fill(area, core.StyledCell(theme.Cell))
	if area.Height() < 1 || area.Width() < 1 {
		return
	}

	rows, cols := g.RowCount(), g.ColumnCount()
	v.vp.Resize(area.Height() - 1)
	v.vp.Clamp(rows, cols)
	if rows > 0 {
		v.vp.EnsureRowVisible(row, rows)
	}
	v.start, v.end = v.vp.VisibleRows(rows)
	v.widths = make(map[int]int)

	gutter := gutterWidth(rows)
	cellsLeft := area.Left + gutter
	if cols > 0 {
		v.vp.EnsureColumnVisible(col, func(left, c int) bool {
			return v.span(g, left, c) <= area.Right-cellsLeft
		})
	}

	b.Fill(core.RectFromSize(area.Top, area.Left, 1, gutter), core.StyledCell(theme.Header))
	v.forEachColumn(g, cellsLeft, area.Right, func(c, x, w int) {
		name := grid.ColumnName(c)
		b.Fill(core.RectFromSize(area.Top, x, 1, w), core.StyledCell(theme.Header))
		pad := max((w-len(name))/2, 0)
		backend.DrawText(b, x+pad, area.Top, x+w, name, theme.Header)
	})

	if rows == 0 {
		if v.emptyText != "" && area.Height() > 1 {
			backend.DrawText(b, cellsLeft, area.Top+1, area.Right, v.emptyText, theme.Gutter)
		}
		return
	}

	for r := v.start; r < v.end; r++ {
		y := area.Top + 1 + (r - v.start)

		num := strconv.Itoa(r + 1)
		style := theme.Gutter
		if r == row {
			style = theme.CursorGutter
		}
		backend.DrawText(b, area.Left+gutter-1-len(num), y, area.Left+gutter, num, style)

		v.forEachColumn(g, cellsLeft, area.Right, func(c, x, w int) {
			style := theme.Cell
			if r == row && c == col {
				style = theme.Cursor
				b.Fill(core.RectFromSize(y, x, 1, w), core.StyledCell(style))
			}
			value, _ := g.Cell(r, c)
			backend.DrawText(b, x, y, x+w, core.Truncate(displayText(value), w, ellipsis), style)
		})
	}
}

// VisibleColumns returns the half-open range of columns drawn by the last
// render for a screen of the given width.
func (v *GridView) VisibleColumns(g Grid, width int) (start, end int) {
	start = v.vp.LeftColumn()
	end = start
	v.forEachColumn(g, gutterWidth(g.RowCount()), width, func(c, _, _ int) {
		end = c + 1
	})
	return start, end
}

// forEachColumn lays out columns from the viewport's left column starting
// at screen column x, calling fn with each column, its x and drawn width.
func (v *GridView) forEachColumn(g Grid, x, right int, fn func(c, x, w int)) {
	for c := v.vp.LeftColumn(); c < g.ColumnCount() && x < right; c++ {
		w := v.width(g, c)
		if avail := right - x; avail < w {
			if avail < v.layout.MinColumnWidth && c != v.vp.LeftColumn() {
				return
			}
			w = avail
		}
		fn(c, x, w)
		x += w + 1
	}
}

// span is the screen width of columns left through c with separators.
func (v *GridView) span(g Grid, left, c int) int {
	total := 0
	for i := left; i <= c; i++ {
		total += v.width(g, i) + 1
	}
	return total - 1
}

func (v *GridView) width(g Grid, c int) int {
	if v.widths == nil {
		v.widths = make(map[int]int)
	}
	if w, ok := v.widths[c]; ok {
		return w
	}
	w := v.layout.ColumnWidth
	for r := v.start; r < v.end; r++ {
		value, _ := g.Cell(r, c)
		if cw := core.StringWidth(displayText(value)); cw > w {
			w = cw
		}
		if w >= v.layout.MaxColumnWidth {
			w = v.layout.MaxColumnWidth
			break
		}
	}
	v.widths[c] = w
	return w
}

func gutterWidth(rows int) int {
	return max(len(strconv.Itoa(rows)), 2) + 1
}

var lineBreaks = strings.NewReplacer("\r\n", "↵", "\n", "↵", "\r", "↵", "\t", " ")

// displayText flattens a cell value onto one line.
func displayText(s string) string {
	return lineBreaks.Replace(s)
}
