// Package backend abstracts the display the grid is drawn on: a tcell
// terminal in the editor and an in-memory NullBackend in tests.
package backend

import "github.com/dshills/csve/internal/renderer/core"

// EventType identifies the kind of input event.
type EventType int

const (
	// EventNone is returned by PollEvent once the backend is shut down.
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event is one input event. Key, Rune and Mod are set for EventKey;
// Width and Height for EventResize.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	Width, Height int
}

// Key represents a keyboard key. Control-letter chords are reported as
// KeyRune with ModCtrl and a lowercase Rune.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// KeyEvent builds a key event for a special key.
func KeyEvent(k Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Mod: mod}
}

// RuneEvent builds a key event for a character.
func RuneEvent(r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod}
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the terminal.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next terminal event.
	// It returns an EventNone event once the backend is shut down.
	PollEvent() Event

	// PostEvent posts an event to the event queue. It is safe to call from
	// any goroutine and is how other goroutines wake the event loop.
	PostEvent(event Event) error

	// Beep produces an audible or visual bell.
	Beep()
}

// DrawText draws s starting at (x, y), stopping before column limit, and
// returns the column after the last cell drawn. A wide cluster that would
// straddle limit is not drawn.
func DrawText(b Backend, x, y, limit int, s string, style core.Style) int {
	for _, c := range core.CellsFromString(s, style) {
		if x+max(c.Width, 1) > limit {
			break
		}
		b.SetCell(x, y, c)
		x++
	}
	return x
}
