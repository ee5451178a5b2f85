// Package viewport tracks which part of the grid is on screen.
//
// Rows scroll one at a time with an optional margin kept above and below
// the cursor. Columns have varying display widths, so horizontal scrolling
// asks the caller whether a column range fits.
package viewport

// Viewport is the scroll position of a grid view.
type Viewport struct {
	topRow  int
	leftCol int

	// height is the number of grid rows on screen.
	height int

	margin int
}

// New creates a viewport showing height rows.
func New(height int) *Viewport {
	v := &Viewport{}
	v.Resize(height)
	return v
}

// Resize sets the number of visible rows.
func (v *Viewport) Resize(height int) {
	if height < 0 {
		height = 0
	}
	v.height = height
}

// SetMargin sets the number of rows kept visible above and below the
// cursor. The margin is capped at a third of the height.
func (v *Viewport) SetMargin(rows int) {
	if rows < 0 {
		rows = 0
	}
	v.margin = rows
}

// Height returns the number of visible rows.
func (v *Viewport) Height() int { return v.height }

// TopRow returns the first visible row.
func (v *Viewport) TopRow() int { return v.topRow }

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int { return v.leftCol }

// VisibleRows returns the half-open range of rows on screen for a grid
// with total rows.
func (v *Viewport) VisibleRows(total int) (start, end int) {
	start = v.topRow
	end = start + v.height
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}
	return start, end
}

// IsRowVisible reports whether row is on screen.
func (v *Viewport) IsRowVisible(row int) bool {
	return row >= v.topRow && row < v.topRow+v.height
}

// ScrollTo makes row the first visible row.
func (v *Viewport) ScrollTo(row int) {
	if row < 0 {
		row = 0
	}
	v.topRow = row
}

// ScrollToColumn makes col the first visible column.
func (v *Viewport) ScrollToColumn(col int) {
	if col < 0 {
		col = 0
	}
	v.leftCol = col
}

// Clamp pulls the scroll position back inside a grid of the given size.
func (v *Viewport) Clamp(rows, cols int) {
	if maxTop := rows - v.height; v.topRow > maxTop {
		v.topRow = max(maxTop, 0)
	}
	if v.leftCol >= cols {
		v.leftCol = max(cols-1, 0)
	}
}

func (v *Viewport) effectiveMargin() int {
	m := v.margin
	if limit := v.height / 3; m > limit {
		m = limit
	}
	return m
}

// EnsureRowVisible scrolls vertically so row lies inside the margins.
func (v *Viewport) EnsureRowVisible(row, total int) {
	if v.height <= 0 {
		return
	}
	m := v.effectiveMargin()

	if row-m < v.topRow {
		v.topRow = row - m
	}
	if row+m >= v.topRow+v.height {
		v.topRow = row + m - v.height + 1
	}

	if maxTop := total - v.height; v.topRow > maxTop {
		v.topRow = maxTop
	}
	if v.topRow < 0 {
		v.topRow = 0
	}
}

// EnsureColumnVisible scrolls horizontally until col is on screen. fits
// reports whether columns left through col fit across the screen.
func (v *Viewport) EnsureColumnVisible(col int, fits func(left, col int) bool) {
	if col < 0 {
		return
	}
	if col < v.leftCol {
		v.leftCol = col
		return
	}
	for v.leftCol < col && !fits(v.leftCol, col) {
		v.leftCol++
	}
}
