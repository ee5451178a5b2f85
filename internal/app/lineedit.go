package app

import (
	"github.com/dshills/csve/internal/renderer/backend"
)

// lineEditor is the single-line input buffer behind cell editing and the
// status line prompts.
type lineEditor struct {
	text   []rune
	cursor int
}

func (e *lineEditor) Set(s string) {
	e.text = []rune(s)
	e.cursor = len(e.text)
}

func (e *lineEditor) String() string {
	return string(e.text)
}

func (e *lineEditor) Runes() []rune {
	return e.text
}

func (e *lineEditor) Cursor() int {
	return e.cursor
}

func (e *lineEditor) Insert(r rune) {
	e.text = append(e.text, 0)
	copy(e.text[e.cursor+1:], e.text[e.cursor:])
	e.text[e.cursor] = r
	e.cursor++
}

// HandleKey applies an editing key and reports whether it was one.
// Enter, Escape and Tab are left to the caller.
func (e *lineEditor) HandleKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt) {
			return e.handleChord(ev.Rune)
		}
		e.Insert(ev.Rune)
	case backend.KeyBackspace:
		if e.cursor > 0 {
			e.text = append(e.text[:e.cursor-1], e.text[e.cursor:]...)
			e.cursor--
		}
	case backend.KeyDelete:
		if e.cursor < len(e.text) {
			e.text = append(e.text[:e.cursor], e.text[e.cursor+1:]...)
		}
	case backend.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case backend.KeyRight:
		if e.cursor < len(e.text) {
			e.cursor++
		}
	case backend.KeyHome:
		e.cursor = 0
	case backend.KeyEnd:
		e.cursor = len(e.text)
	default:
		return false
	}
	return true
}

// handleChord implements the readline chords ctrl+a, ctrl+e, ctrl+u and
// ctrl+k.
func (e *lineEditor) handleChord(r rune) bool {
	switch r {
	case 'a':
		e.cursor = 0
	case 'e':
		e.cursor = len(e.text)
	case 'u':
		e.text = e.text[e.cursor:]
		e.cursor = 0
	case 'k':
		e.text = e.text[:e.cursor]
	default:
		return false
	}
	return true
}
