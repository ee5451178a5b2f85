package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/csve/internal/renderer/backend"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into a normalized Event.
//
// Supported formats:
//   - Single character: "a", "A", ":", "+"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space", "F5"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl++"
//   - Vim-style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if len([]rune(spec)) == 1 {
		return normalize(Event{Key: backend.KeyRune, Rune: []rune(spec)[0]}), nil
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}

	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}

	return parseKey(spec, backend.ModNone)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return ev
}

// Normalize parses and re-formats a key specification to its canonical form.
func Normalize(spec string) (string, error) {
	ev, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return ev.String(), nil
}

// parseVimStyle parses the inside of "<C-s>", "<A-F4>", "<CR>".
func parseVimStyle(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) > 1 {
		// "<C-->" names the minus key
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods backend.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods |= backend.ModCtrl
		case "a", "m":
			mods |= backend.ModAlt
		case "s":
			mods |= backend.ModShift
		case "d":
			mods |= backend.ModMeta
		case "":
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}
	return parseKey(keyPart, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Event, error) {
	var modPart, keyPart string
	if strings.HasSuffix(spec, "++") {
		modPart, keyPart = spec[:len(spec)-2], "+"
	} else {
		i := strings.LastIndex(spec, "+")
		modPart, keyPart = spec[:i], spec[i+1:]
	}

	var mods backend.ModMask
	for _, p := range strings.Split(modPart, "+") {
		mod := modifierFromName(strings.ToLower(strings.TrimSpace(p)))
		if mod == backend.ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods |= mod
	}
	return parseKey(keyPart, mods)
}

func parseKey(keyPart string, mods backend.ModMask) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	lower := strings.ToLower(keyPart)
	if k, ok := names[lower]; ok {
		return Event{Key: k, Mod: mods}, nil
	}
	if r, ok := runeNames[lower]; ok {
		return normalize(Event{Key: backend.KeyRune, Rune: r, Mod: mods}), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		return normalize(Event{Key: backend.KeyRune, Rune: runes[0], Mod: mods}), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

func modifierFromName(name string) backend.ModMask {
	switch name {
	case "ctrl", "control", "c":
		return backend.ModCtrl
	case "alt", "opt", "option", "a":
		return backend.ModAlt
	case "shift", "s":
		return backend.ModShift
	case "meta", "cmd", "super", "win":
		return backend.ModMeta
	}
	return backend.ModNone
}
