package renderer

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/csve/internal/renderer/core"
	"github.com/dshills/csve/internal/renderer/statusline"
)

// Theme holds every style the editor draws with.
type Theme struct {
	Header core.Style
	Gutter core.Style
	Cell   core.Style
	Cursor core.Style

	// CursorGutter marks the row number of the cursor row.
	CursorGutter core.Style

	Status statusline.Styles
}

// DefaultTheme returns a theme that only uses terminal default colors.
func DefaultTheme() Theme {
	base := core.DefaultStyle()
	return Theme{
		Header:       base.Bold(),
		Gutter:       base,
		Cell:         base,
		Cursor:       base.Reverse(),
		CursorGutter: base.Bold(),
		Status:       statusline.DefaultStyles(),
	}
}

// ThemeFromColors builds a theme from named colors such as "header_fg" or
// "cursor_bg". Missing names keep the default style.
func ThemeFromColors(colors map[string]colorful.Color) Theme {
	t := DefaultTheme()
	fg := func(s *core.Style, name string) {
		if c, ok := colors[name]; ok {
			*s = s.WithForeground(core.ColorFromColorful(c))
		}
	}
	bg := func(s *core.Style, name string) {
		if c, ok := colors[name]; ok {
			*s = s.WithBackground(core.ColorFromColorful(c))
		}
	}

	fg(&t.Header, "header_fg")
	bg(&t.Header, "header_bg")
	fg(&t.Gutter, "gutter_fg")
	fg(&t.Cell, "cell_fg")
	fg(&t.CursorGutter, "header_fg")

	_, hasFG := colors["cursor_fg"]
	_, hasBG := colors["cursor_bg"]
	if hasFG && hasBG {
		t.Cursor = core.DefaultStyle()
		fg(&t.Cursor, "cursor_fg")
		bg(&t.Cursor, "cursor_bg")
	}

	if _, ok := colors["status_bg"]; ok {
		bar := core.DefaultStyle()
		fg(&bar, "status_fg")
		bg(&bar, "status_bg")
		t.Status.Bar = bar

		// The mode badge is the bar color pulled toward the cursor color.
		mode := bar.Bold()
		if c, ok := colors["cursor_bg"]; ok {
			mode = mode.WithBackground(bar.Background.Blend(core.ColorFromColorful(c), 0.6))
		}
		t.Status.Mode = mode
	}

	fg(&t.Status.Message, "message_fg")
	fg(&t.Status.Warning, "header_fg")
	fg(&t.Status.Error, "error_fg")
	return t
}
