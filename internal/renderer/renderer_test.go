package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/renderer/core"
)

type fakeGrid [][]string

func (g fakeGrid) RowCount() int { return len(g) }

func (g fakeGrid) ColumnCount() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g fakeGrid) Cell(row, col int) (string, error) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", fmt.Errorf("out of range")
	}
	return g[row][col], nil
}

func newTestRenderer(t *testing.T, w, h int, layout Layout) (*Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	return New(b, layout, DefaultTheme()), b
}

func narrowLayout() Layout {
	return Layout{ColumnWidth: 4, MinColumnWidth: 3, MaxColumnWidth: 6}
}

func TestRenderGrid(t *testing.T) {
	r, b := newTestRenderer(t, 40, 8, narrowLayout())
	g := fakeGrid{{"name", "qty"}, {"pen", "3"}}

	r.Status().SetDocument("items.csv", false, 2, 2)
	r.Render(g, 0, 0)

	want := []string{
		"    A    B",
		" 1 name qty",
		" 2 pen  3",
	}
	for y, line := range want {
		if got := b.Line(y); got != line {
			t.Errorf("Line(%d) = %q, want %q", y, got, line)
		}
	}

	if got := b.GetCell(3, 1).Style; !got.Attributes.Has(core.AttrReverse) {
		t.Errorf("cursor cell style = %+v, want reverse", got)
	}
	if got := b.GetCell(8, 1).Style; got.Attributes.Has(core.AttrReverse) {
		t.Errorf("non-cursor cell is highlighted")
	}
	if bar := b.Line(6); !strings.Contains(bar, "items.csv") || !strings.HasSuffix(bar, "A1  2×2") {
		t.Errorf("status bar = %q", bar)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("terminal cursor should be hidden outside prompts")
	}
}

func TestRenderTruncatesCells(t *testing.T) {
	r, b := newTestRenderer(t, 40, 6, narrowLayout())
	g := fakeGrid{{"abcdefghij", "x"}, {"日本語", "a\nb"}}
	r.Render(g, 0, 1)

	if got := b.Line(1); got != " 1 abcde… x" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := b.Line(2); got != " 2 日本語 a↵b" {
		t.Errorf("Line(2) = %q", got)
	}
}

func TestRenderWideTruncation(t *testing.T) {
	r, b := newTestRenderer(t, 40, 5, Layout{ColumnWidth: 4, MinColumnWidth: 3, MaxColumnWidth: 4})
	g := fakeGrid{{"日本語"}}
	r.Render(g, 0, 0)

	if got := b.Line(1); got != " 1 日…" {
		t.Errorf("Line(1) = %q", got)
	}
}

func TestRenderScrollsVertically(t *testing.T) {
	r, b := newTestRenderer(t, 30, 8, narrowLayout())
	g := make(fakeGrid, 20)
	for i := range g {
		g[i] = []string{fmt.Sprintf("r%d", i+1)}
	}

	r.Render(g, 10, 0)

	if r.View().Viewport().TopRow() != 6 {
		t.Errorf("top row = %d, want 6", r.View().Viewport().TopRow())
	}
	if got := b.Line(1); got != " 7 r7" {
		t.Errorf("first data line = %q", got)
	}
	if got := b.Line(5); got != "11 r11" {
		t.Errorf("last data line = %q", got)
	}
	if r.View().PageSize() != 5 {
		t.Errorf("PageSize = %d, want 5", r.View().PageSize())
	}
}

func TestRenderScrollsHorizontally(t *testing.T) {
	r, b := newTestRenderer(t, 20, 6, narrowLayout())
	row := make([]string, 10)
	g := fakeGrid{row}

	r.Render(g, 0, 6)

	if left := r.View().Viewport().LeftColumn(); left != 4 {
		t.Errorf("left column = %d, want 4", left)
	}
	if got := b.Line(0); got != "    E    F    G" {
		t.Errorf("header = %q", got)
	}
	start, end := r.View().VisibleColumns(g, 20)
	if start != 4 || end != 7 {
		t.Errorf("VisibleColumns = %d,%d; want 4,7", start, end)
	}
}

func TestRenderEmptyGrid(t *testing.T) {
	r, b := newTestRenderer(t, 40, 6, narrowLayout())
	r.View().SetEmptyText("empty grid")
	r.Render(fakeGrid{}, 0, 0)

	if got := b.Line(1); got != "   empty grid" {
		t.Errorf("Line(1) = %q", got)
	}
}

func TestRenderTinyScreen(t *testing.T) {
	r, b := newTestRenderer(t, 10, 3, narrowLayout())
	r.Render(fakeGrid{{"a"}}, 0, 0)
	if got := b.Line(0); got != "    A" {
		t.Errorf("Line(0) = %q", got)
	}

	r, b = newTestRenderer(t, 10, 1, narrowLayout())
	r.Render(fakeGrid{{"a"}}, 0, 0)
	if got := b.Line(0); got != "" {
		t.Errorf("one-line screen Line(0) = %q", got)
	}
}

func TestThemeFromColors(t *testing.T) {
	fg, _ := colorful.Hex("#102030")
	bg, _ := colorful.Hex("#a0b0c0")
	theme := ThemeFromColors(map[string]colorful.Color{
		"cursor_fg": fg,
		"cursor_bg": bg,
		"status_bg": bg,
		"error_fg":  fg,
	})

	if theme.Cursor.Foreground != core.ColorFromRGB(0x10, 0x20, 0x30) {
		t.Errorf("cursor fg = %+v", theme.Cursor.Foreground)
	}
	if theme.Cursor.Background != core.ColorFromRGB(0xa0, 0xb0, 0xc0) {
		t.Errorf("cursor bg = %+v", theme.Cursor.Background)
	}
	if theme.Cursor.Attributes.Has(core.AttrReverse) {
		t.Error("colored cursor should not use reverse video")
	}
	if theme.Status.Bar.Background.IsDefault() {
		t.Error("status bar background should be set")
	}
	if theme.Status.Error.Foreground != core.ColorFromRGB(0x10, 0x20, 0x30) {
		t.Errorf("error fg = %+v", theme.Status.Error.Foreground)
	}
	if !theme.Header.Foreground.IsDefault() {
		t.Error("header fg should stay default when unset")
	}
}

func TestThemeCursorNeedsBothColors(t *testing.T) {
	bg, _ := colorful.Hex("#a0b0c0")
	theme := ThemeFromColors(map[string]colorful.Color{"cursor_bg": bg})
	if !theme.Cursor.Attributes.Has(core.AttrReverse) {
		t.Error("cursor with only a background should keep reverse video")
	}
}
