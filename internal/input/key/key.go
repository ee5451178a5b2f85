package key

import (
	"strings"
	"unicode"

	"github.com/dshills/csve/internal/renderer/backend"
)

// Event is a normalized key press.
type Event struct {
	Key  backend.Key
	Rune rune
	Mod  backend.ModMask
}

// names maps lowercase key names and aliases to keys.
var names = map[string]backend.Key{
	"cr":        backend.KeyEnter,
	"return":    backend.KeyEnter,
	"enter":     backend.KeyEnter,
	"esc":       backend.KeyEscape,
	"escape":    backend.KeyEscape,
	"tab":       backend.KeyTab,
	"backtab":   backend.KeyBacktab,
	"bs":        backend.KeyBackspace,
	"backspace": backend.KeyBackspace,
	"del":       backend.KeyDelete,
	"delete":    backend.KeyDelete,
	"ins":       backend.KeyInsert,
	"insert":    backend.KeyInsert,
	"home":      backend.KeyHome,
	"end":       backend.KeyEnd,
	"pageup":    backend.KeyPageUp,
	"pgup":      backend.KeyPageUp,
	"pagedown":  backend.KeyPageDown,
	"pgdn":      backend.KeyPageDown,
	"up":        backend.KeyUp,
	"down":      backend.KeyDown,
	"left":      backend.KeyLeft,
	"right":     backend.KeyRight,
	"f1":        backend.KeyF1,
	"f2":        backend.KeyF2,
	"f3":        backend.KeyF3,
	"f4":        backend.KeyF4,
	"f5":        backend.KeyF5,
	"f6":        backend.KeyF6,
	"f7":        backend.KeyF7,
	"f8":        backend.KeyF8,
	"f9":        backend.KeyF9,
	"f10":       backend.KeyF10,
	"f11":       backend.KeyF11,
	"f12":       backend.KeyF12,
}

// runeNames maps names that stand for printable runes.
var runeNames = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
	"plus":   '+',
	"minus":  '-',
}

// canonical names used by String.
var keyStrings = map[backend.Key]string{
	backend.KeyEnter:     "Enter",
	backend.KeyEscape:    "Esc",
	backend.KeyTab:       "Tab",
	backend.KeyBacktab:   "Backtab",
	backend.KeyBackspace: "Backspace",
	backend.KeyDelete:    "Delete",
	backend.KeyInsert:    "Insert",
	backend.KeyHome:      "Home",
	backend.KeyEnd:       "End",
	backend.KeyPageUp:    "PageUp",
	backend.KeyPageDown:  "PageDown",
	backend.KeyUp:        "Up",
	backend.KeyDown:      "Down",
	backend.KeyLeft:      "Left",
	backend.KeyRight:     "Right",
	backend.KeyF1:        "F1",
	backend.KeyF2:        "F2",
	backend.KeyF3:        "F3",
	backend.KeyF4:        "F4",
	backend.KeyF5:        "F5",
	backend.KeyF6:        "F6",
	backend.KeyF7:        "F7",
	backend.KeyF8:        "F8",
	backend.KeyF9:        "F9",
	backend.KeyF10:       "F10",
	backend.KeyF11:       "F11",
	backend.KeyF12:       "F12",
}

// KeyFromName returns the key with the given name, or KeyNone.
func KeyFromName(name string) backend.Key {
	return names[strings.ToLower(name)]
}

// FromBackend converts a terminal key event to its normalized form.
func FromBackend(ev backend.Event) Event {
	return normalize(Event{Key: ev.Key, Rune: ev.Rune, Mod: ev.Mod})
}

// IsRune reports whether e is a printable rune with no command modifier.
func (e Event) IsRune() bool {
	return e.Key == backend.KeyRune &&
		!e.Mod.Has(backend.ModCtrl) && !e.Mod.Has(backend.ModAlt) && !e.Mod.Has(backend.ModMeta)
}

// String returns the canonical specification, e.g. "Ctrl+S" or "Enter".
// The result parses back to e.
func (e Event) String() string {
	var sb strings.Builder
	if e.Mod.Has(backend.ModCtrl) {
		sb.WriteString("Ctrl+")
	}
	if e.Mod.Has(backend.ModAlt) {
		sb.WriteString("Alt+")
	}
	if e.Mod.Has(backend.ModMeta) {
		sb.WriteString("Meta+")
	}
	if e.Mod.Has(backend.ModShift) {
		sb.WriteString("Shift+")
	}

	switch e.Key {
	case backend.KeyRune:
		switch {
		case e.Rune == ' ':
			sb.WriteString("Space")
		case e.Rune == '+' && e.Mod != backend.ModNone:
			sb.WriteString("Plus")
		case e.Mod.Has(backend.ModCtrl):
			sb.WriteRune(unicode.ToUpper(e.Rune))
		default:
			sb.WriteRune(e.Rune)
		}
	default:
		if name, ok := keyStrings[e.Key]; ok {
			sb.WriteString(name)
		} else {
			sb.WriteString("None")
		}
	}
	return sb.String()
}

func normalize(e Event) Event {
	if e.Key != backend.KeyRune {
		return e
	}
	if e.Mod.Has(backend.ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
		e.Mod &^= backend.ModShift
		return e
	}
	// The shifted rune already encodes Shift.
	e.Mod &^= backend.ModShift
	return e
}
