package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/csve/internal/renderer/backend"
)

func newScreen(t *testing.T, w, h int) *backend.NullBackend {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRenderStatusBar(t *testing.T) {
	b := newScreen(t, 40, 2)
	s := New(DefaultStyles())
	s.SetDocument("data.csv", true, 3, 2)
	s.SetPosition(1, 1)

	if s.Render(b, 0, 40) {
		t.Error("Render should not place the cursor without a prompt")
	}

	bar := b.Line(0)
	if !strings.HasPrefix(bar, " NORMAL  data.csv [+]") {
		t.Errorf("bar = %q", bar)
	}
	if !strings.HasSuffix(bar, "B2  3×2") {
		t.Errorf("bar should end with position, got %q", bar)
	}
}

func TestRenderChangedOnDisk(t *testing.T) {
	b := newScreen(t, 60, 2)
	s := New(DefaultStyles())
	s.SetDocument("data.csv", false, 1, 1)
	s.SetChangedOnDisk(true)
	s.Render(b, 0, 60)

	if bar := b.Line(0); !strings.Contains(bar, "data.csv [changed on disk]") {
		t.Errorf("bar = %q", bar)
	}
}

func TestRenderEmptyGridPosition(t *testing.T) {
	b := newScreen(t, 30, 2)
	s := New(DefaultStyles())
	s.SetDocument("Untitled", false, 0, 2)
	s.Render(b, 0, 30)

	if bar := b.Line(0); !strings.HasSuffix(bar, "0×2") {
		t.Errorf("bar = %q", bar)
	}
}

func TestRenderTruncatesLongName(t *testing.T) {
	b := newScreen(t, 30, 2)
	s := New(DefaultStyles())
	s.SetDocument(strings.Repeat("n", 50)+".csv", false, 1, 1)
	s.SetPosition(0, 0)
	s.Render(b, 0, 30)

	bar := b.Line(0)
	if !strings.Contains(bar, "…") {
		t.Errorf("long name should be truncated: %q", bar)
	}
	if !strings.HasSuffix(bar, "A1  1×1") {
		t.Errorf("position must stay visible: %q", bar)
	}
}

func TestRenderMessage(t *testing.T) {
	b := newScreen(t, 30, 2)
	s := New(DefaultStyles())
	s.SetMessage("wrote /tmp/a.csv", MessageInfo)
	s.Render(b, 0, 30)

	if got := b.Line(1); got != "wrote /tmp/a.csv" {
		t.Errorf("message line = %q", got)
	}

	s.ClearMessage()
	s.Render(b, 0, 30)
	if got := b.Line(1); got != "" {
		t.Errorf("cleared message line = %q", got)
	}
	if msg, typ := s.Message(); msg != "" || typ != MessageNone {
		t.Errorf("Message() = %q, %v", msg, typ)
	}
}

func TestRenderPrompt(t *testing.T) {
	b := newScreen(t, 30, 2)
	s := New(DefaultStyles())
	s.SetPrompt(":", []rune("w out.csv"), 9)

	if !s.Render(b, 0, 30) {
		t.Error("Render should place the cursor for a prompt")
	}
	if got := b.Line(1); got != ":w out.csv" {
		t.Errorf("prompt line = %q", got)
	}
	x, y, visible := b.CursorPosition()
	if x != 10 || y != 1 || !visible {
		t.Errorf("cursor = %d,%d visible=%v; want 10,1 visible", x, y, visible)
	}

	s.ClearPrompt()
	if s.Render(b, 0, 30) {
		t.Error("cleared prompt should not place the cursor")
	}
}

func TestRenderPromptScrolls(t *testing.T) {
	b := newScreen(t, 10, 2)
	s := New(DefaultStyles())
	s.SetPrompt(":", []rune(strings.Repeat("a", 20)), 20)
	s.Render(b, 0, 10)

	if got := b.Line(1); got != strings.Repeat("a", 9) {
		t.Errorf("scrolled prompt = %q", got)
	}
	if x, _, _ := b.CursorPosition(); x != 9 {
		t.Errorf("cursor x = %d, want 9", x)
	}
}
