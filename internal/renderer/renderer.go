// Package renderer draws the editor screen: the grid view on top and the
// two-line status area at the bottom.
package renderer

import (
	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/renderer/core"
	"github.com/dshills/csve/internal/renderer/statusline"
)

// Renderer composes the grid view and status line on a backend.
type Renderer struct {
	backend backend.Backend
	theme   Theme
	view    *GridView
	status  *statusline.StatusLine
}

// New creates a renderer drawing to b.
func New(b backend.Backend, layout Layout, theme Theme) *Renderer {
	return &Renderer{
		backend: b,
		theme:   theme,
		view:    NewGridView(layout),
		status:  statusline.New(theme.Status),
	}
}

// Backend returns the backend being drawn to.
func (r *Renderer) Backend() backend.Backend { return r.backend }

// View returns the grid view.
func (r *Renderer) View() *GridView { return r.view }

// Status returns the status line.
func (r *Renderer) Status() *statusline.StatusLine { return r.status }

// SetTheme replaces the theme.
func (r *Renderer) SetTheme(theme Theme) {
	r.theme = theme
	r.status.SetStyles(theme.Status)
}

// Render draws a full frame with the cursor at (row, col) and shows it.
func (r *Renderer) Render(g Grid, row, col int) {
	width, height := r.backend.Size()
	if width <= 0 || height <= 0 {
		return
	}

	r.status.SetPosition(row, col)

	statusHeight := min(r.status.Height(), height)
	gridArea := core.RectFromSize(0, 0, height-statusHeight, width)
	r.view.Render(r.backend, gridArea, g, row, col, r.theme)

	cursorPlaced := false
	if statusHeight == r.status.Height() {
		cursorPlaced = r.status.Render(r.backend, height-statusHeight, width)
	}
	if !cursorPlaced {
		r.backend.HideCursor()
	}
	r.backend.Show()
}
