package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/csve/internal/action"
	"github.com/dshills/csve/internal/input/key"
	"github.com/dshills/csve/internal/renderer/backend"
)

func TestDefaultLookup(t *testing.T) {
	km := Default()

	tests := []struct {
		ev   backend.Event
		want string
	}{
		{backend.RuneEvent('s', backend.ModCtrl), action.FileSave},
		{backend.RuneEvent('n', backend.ModCtrl), action.FileNew},
		{backend.RuneEvent('q', backend.ModCtrl), action.AppQuit},
		{backend.RuneEvent('r', backend.ModCtrl), action.GridAddRow},
		{backend.RuneEvent('l', backend.ModCtrl), action.GridAddColumn},
		{backend.KeyEvent(backend.KeyEnter, backend.ModNone), action.CellEdit},
		{backend.KeyEvent(backend.KeyF2, backend.ModNone), action.CellEdit},
		{backend.KeyEvent(backend.KeyUp, backend.ModNone), action.CursorUp},
		{backend.RuneEvent('j', backend.ModNone), action.CursorDown},
		{backend.RuneEvent('l', backend.ModNone), action.CursorRight},
		{backend.RuneEvent('G', backend.ModShift), action.CursorBottom},
		{backend.RuneEvent(':', backend.ModShift), action.AppCommand},
	}

	for _, tt := range tests {
		got, ok := km.Lookup(key.FromBackend(tt.ev))
		if !ok || got != tt.want {
			t.Errorf("Lookup(%v) = %q, %v; want %q", key.FromBackend(tt.ev), got, ok, tt.want)
		}
	}

	if _, ok := km.Lookup(key.MustParse("x")); ok {
		t.Error("x should be unbound")
	}
}

func TestBindMovesKey(t *testing.T) {
	km := New()
	if err := km.Bind("Ctrl+S", "a"); err != nil {
		t.Fatal(err)
	}
	if err := km.Bind("<C-s>", "b"); err != nil {
		t.Fatal(err)
	}

	got, _ := km.Lookup(key.MustParse("ctrl+s"))
	if got != "b" {
		t.Errorf("Lookup = %q, want b", got)
	}
	if keys := km.Keys("a"); len(keys) != 0 {
		t.Errorf("action a still has keys %v", keys)
	}
	if km.Len() != 1 {
		t.Errorf("Len = %d, want 1", km.Len())
	}
}

func TestBindInvalidSpec(t *testing.T) {
	km := New()
	if err := km.Bind("Hyper+x", "a"); !errors.Is(err, key.ErrInvalidSpec) {
		t.Errorf("Bind error = %v, want ErrInvalidSpec", err)
	}
}

func TestLoadOverridesReplaceAction(t *testing.T) {
	km, err := Load(map[string][]string{
		action.FileSave: {"F9"},
	})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if _, ok := km.Lookup(key.MustParse("Ctrl+S")); ok {
		t.Error("Ctrl+S should no longer be bound")
	}
	if got, _ := km.Lookup(key.MustParse("F9")); got != action.FileSave {
		t.Errorf("F9 = %q, want file.save", got)
	}
	if got, _ := km.Lookup(key.MustParse("Ctrl+O")); got != action.FileOpen {
		t.Errorf("untouched default Ctrl+O = %q", got)
	}
}

func TestLoadOverrideStealsKey(t *testing.T) {
	km, err := Load(map[string][]string{
		action.FileExport: {"Ctrl+S"},
	})
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if got, _ := km.Lookup(key.MustParse("Ctrl+S")); got != action.FileExport {
		t.Errorf("Ctrl+S = %q, want file.export", got)
	}
	if len(km.Keys(action.FileSave)) != 0 {
		t.Errorf("file.save keys = %v, want none", km.Keys(action.FileSave))
	}
}

func TestLoadInvalidLeavesNothing(t *testing.T) {
	_, err := Load(map[string][]string{action.FileSave: {"Ctrl+"}})
	if err == nil {
		t.Fatal("Load should fail on invalid spec")
	}
}

func TestUnbind(t *testing.T) {
	km := Default()
	if err := km.Unbind("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok := km.Lookup(key.MustParse("k")); ok {
		t.Error("k should be unbound")
	}
	keys := km.Keys(action.CursorUp)
	if len(keys) != 1 || keys[0] != key.MustParse("Up") {
		t.Errorf("cursor.up keys = %v, want [Up]", keys)
	}
}

func TestBindingsSorted(t *testing.T) {
	km := New()
	_ = km.Bind("b", "zeta")
	_ = km.Bind("a", "alpha")
	_ = km.Bind("c", "alpha")

	got := km.Bindings()
	if len(got) != 3 {
		t.Fatalf("Bindings len = %d", len(got))
	}
	if got[0].Action != "alpha" || got[1].Action != "alpha" || got[2].Action != "zeta" {
		t.Errorf("Bindings order = %+v", got)
	}
	if got[0].Key.Rune != 'a' || got[1].Key.Rune != 'c' {
		t.Errorf("keys not in binding order: %+v", got)
	}
}
