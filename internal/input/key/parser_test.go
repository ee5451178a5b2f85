package key

import (
	"errors"
	"testing"

	"github.com/dshills/csve/internal/renderer/backend"
)

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
	}{
		{"a", 'a'},
		{"A", 'A'},
		{"1", '1'},
		{":", ':'},
		{"+", '+'},
		{"<", '<'},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != backend.KeyRune {
			t.Errorf("Parse(%q) key = %v, want KeyRune", tt.spec, ev.Key)
		}
		if ev.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, ev.Rune, tt.wantRune)
		}
		if ev.Mod != backend.ModNone {
			t.Errorf("Parse(%q) mod = %v, want none", tt.spec, ev.Mod)
		}
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey backend.Key
	}{
		{"Enter", backend.KeyEnter},
		{"enter", backend.KeyEnter},
		{"<CR>", backend.KeyEnter},
		{"Escape", backend.KeyEscape},
		{"<Esc>", backend.KeyEscape},
		{"Tab", backend.KeyTab},
		{"Backspace", backend.KeyBackspace},
		{"<BS>", backend.KeyBackspace},
		{"Delete", backend.KeyDelete},
		{"Up", backend.KeyUp},
		{"Down", backend.KeyDown},
		{"Left", backend.KeyLeft},
		{"Right", backend.KeyRight},
		{"Home", backend.KeyHome},
		{"End", backend.KeyEnd},
		{"PgUp", backend.KeyPageUp},
		{"PageDown", backend.KeyPageDown},
		{"F1", backend.KeyF1},
		{"F12", backend.KeyF12},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, ev.Key, tt.wantKey)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  backend.Key
		wantRune rune
		wantMod  backend.ModMask
	}{
		{"Ctrl+S", backend.KeyRune, 's', backend.ModCtrl},
		{"ctrl+s", backend.KeyRune, 's', backend.ModCtrl},
		{"<C-s>", backend.KeyRune, 's', backend.ModCtrl},
		{"<C-S>", backend.KeyRune, 's', backend.ModCtrl},
		{"Ctrl+Shift+P", backend.KeyRune, 'p', backend.ModCtrl},
		{"Alt+F4", backend.KeyF4, 0, backend.ModAlt},
		{"<A-f>", backend.KeyRune, 'f', backend.ModAlt},
		{"Shift+Tab", backend.KeyTab, 0, backend.ModShift},
		{"Ctrl++", backend.KeyRune, '+', backend.ModCtrl},
		{"Ctrl+Plus", backend.KeyRune, '+', backend.ModCtrl},
		{"<C-->", backend.KeyRune, '-', backend.ModCtrl},
		{"Ctrl+Space", backend.KeyRune, ' ', backend.ModCtrl},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey || ev.Rune != tt.wantRune || ev.Mod != tt.wantMod {
			t.Errorf("Parse(%q) = %+v, want key=%v rune=%q mod=%v",
				tt.spec, ev, tt.wantKey, tt.wantRune, tt.wantMod)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("   "); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(blank) error = %v, want ErrEmptySpec", err)
	}

	for _, spec := range []string{"Hyper+x", "<X-a>", "<>", "Ctrl+", "notakey", "Ctrl+Nope"} {
		if _, err := Parse(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidSpec", spec, err)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("Hyper+x")
}

func TestStringRoundTrip(t *testing.T) {
	specs := []string{
		"Ctrl+S", "Alt+F4", "Enter", "Esc", "a", ":", "+", "Ctrl+Plus",
		"Ctrl+-", "Shift+Tab", "Space", "Ctrl+Space", "F5", "Delete",
	}

	for _, spec := range specs {
		ev := MustParse(spec)
		got := ev.String()
		if got != spec {
			t.Errorf("Parse(%q).String() = %q", spec, got)
		}
		back, err := Parse(got)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", got, err)
			continue
		}
		if back != ev {
			t.Errorf("round trip of %q = %+v, want %+v", spec, back, ev)
		}
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("<C-s>")
	if err != nil {
		t.Fatalf("Normalize error = %v", err)
	}
	if got != "Ctrl+S" {
		t.Errorf("Normalize(<C-s>) = %q, want Ctrl+S", got)
	}
}

func TestFromBackend(t *testing.T) {
	tests := []struct {
		name string
		in   backend.Event
		want Event
	}{
		{"shifted rune", backend.RuneEvent('A', backend.ModShift), Event{Key: backend.KeyRune, Rune: 'A'}},
		{"ctrl upper", backend.RuneEvent('S', backend.ModCtrl|backend.ModShift), Event{Key: backend.KeyRune, Rune: 's', Mod: backend.ModCtrl}},
		{"special", backend.KeyEvent(backend.KeyUp, backend.ModShift), Event{Key: backend.KeyUp, Mod: backend.ModShift}},
	}

	for _, tt := range tests {
		if got := FromBackend(tt.in); got != tt.want {
			t.Errorf("%s: FromBackend = %+v, want %+v", tt.name, got, tt.want)
		}
	}

	if !FromBackend(backend.RuneEvent('x', backend.ModNone)).IsRune() {
		t.Error("plain rune should report IsRune")
	}
	if FromBackend(backend.RuneEvent('x', backend.ModCtrl)).IsRune() {
		t.Error("ctrl chord should not report IsRune")
	}
}
