package core

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestCellsFromString(t *testing.T) {
	cells := CellsFromString("a日\tb", DefaultStyle())

	// a, 日, continuation, replacement for tab, b
	if len(cells) != 5 {
		t.Fatalf("len = %d, want 5: %+v", len(cells), cells)
	}
	if cells[1].Text != "日" || cells[1].Width != 2 {
		t.Errorf("wide cell = %+v", cells[1])
	}
	if !cells[2].IsContinuation() {
		t.Errorf("expected continuation cell, got %+v", cells[2])
	}
	if cells[3].Text != "�" {
		t.Errorf("control character shown as %q", cells[3].Text)
	}
	if got := StringFromCells(cells); got != "a日�b" {
		t.Errorf("StringFromCells = %q", got)
	}
}

func TestCellsFromString_Grapheme(t *testing.T) {
	// e + combining acute accent is one cluster.
	cells := CellsFromString("e\u0301x", DefaultStyle())
	if len(cells) != 2 {
		t.Fatalf("len = %d, want 2", len(cells))
	}
	if cells[0].Text != "e\u0301" {
		t.Errorf("cluster = %q", cells[0].Text)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"日本語テキスト", 5, "日本…"},
		{"abc", 0, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width, "…"); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if got := StringWidth(Truncate(tt.in, tt.width, "…")); got > tt.width {
			t.Errorf("Truncate(%q, %d) is %d wide", tt.in, tt.width, got)
		}
	}
}

func TestColorFromColorful(t *testing.T) {
	c, err := colorful.Hex("#61afef")
	if err != nil {
		t.Fatal(err)
	}
	got := ColorFromColorful(c)
	if got != ColorFromRGB(0x61, 0xaf, 0xef) {
		t.Errorf("ColorFromColorful = %+v", got)
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend 0 = %+v, want black", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend 1 = %+v, want white", got)
	}
	if got := ColorDefault.Blend(white, 0.5); !got.IsDefault() {
		t.Errorf("default color should not blend, got %+v", got)
	}
}

func TestRect(t *testing.T) {
	r := RectFromSize(1, 2, 3, 4)
	if r.Width() != 4 || r.Height() != 3 {
		t.Errorf("size = %dx%d", r.Width(), r.Height())
	}
	if (ScreenRect{Top: 5, Bottom: 2}).Height() != 0 {
		t.Error("inverted rect should have zero height")
	}
}
