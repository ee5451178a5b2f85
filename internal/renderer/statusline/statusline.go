// Package statusline provides the status bar and the message/prompt line.
package statusline

import (
	"fmt"

	"github.com/dshills/csve/internal/grid"
	"github.com/dshills/csve/internal/renderer/backend"
	"github.com/dshills/csve/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// Styles holds the styles used by the status line.
type Styles struct {
	Bar     core.Style
	Mode    core.Style
	Message core.Style
	Warning core.Style
	Error   core.Style
	Prompt  core.Style
}

// DefaultStyles returns styles that work on any terminal.
func DefaultStyles() Styles {
	base := core.DefaultStyle()
	return Styles{
		Bar:     base.Reverse(),
		Mode:    base.Reverse().Bold(),
		Message: base,
		Warning: base.Bold(),
		Error:   base.Bold(),
		Prompt:  base,
	}
}

// StatusLine renders the two bottom rows: a status bar describing the
// document and cursor, and a line for messages or prompt input.
type StatusLine struct {
	styles Styles

	mode     string
	name     string
	modified bool
	changed  bool

	row, col   int
	rows, cols int

	message     string
	messageType MessageType

	promptActive bool
	promptLabel  string
	promptBuffer []rune
	promptCursor int
}

// New creates a status line.
func New(styles Styles) *StatusLine {
	return &StatusLine{styles: styles, mode: "NORMAL"}
}

// SetStyles replaces the styles.
func (s *StatusLine) SetStyles(styles Styles) {
	s.styles = styles
}

// SetMode updates the displayed mode name.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetDocument updates the document name, modified flag and grid size.
func (s *StatusLine) SetDocument(name string, modified bool, rows, cols int) {
	s.name = name
	s.modified = modified
	s.rows, s.cols = rows, cols
}

// SetChangedOnDisk marks that the file was modified by another program.
func (s *StatusLine) SetChangedOnDisk(changed bool) {
	s.changed = changed
}

// SetPosition updates the cursor cell (0-based).
func (s *StatusLine) SetPosition(row, col int) {
	s.row, s.col = row, col
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// SetPrompt shows label followed by buffer on the bottom line with the
// terminal cursor at rune offset cursor.
func (s *StatusLine) SetPrompt(label string, buffer []rune, cursor int) {
	s.promptActive = true
	s.promptLabel = label
	s.promptBuffer = buffer
	s.promptCursor = cursor
}

// ClearPrompt hides the prompt.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel = ""
	s.promptBuffer = nil
	s.promptCursor = 0
}

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int {
	return 2
}

// Render draws the status bar at row and the message or prompt at row+1.
// It reports whether the terminal cursor was placed.
func (s *StatusLine) Render(b backend.Backend, row, width int) bool {
	s.renderBar(b, row, width)
	if s.promptActive {
		s.renderPrompt(b, row+1, width)
		return true
	}
	s.renderMessage(b, row+1, width)
	return false
}

func (s *StatusLine) renderBar(b backend.Backend, row, width int) {
	b.Fill(core.RectFromSize(row, 0, 1, width), core.StyledCell(s.styles.Bar))

	x := backend.DrawText(b, 0, row, width, " "+s.mode+" ", s.styles.Mode)
	x++

	left := s.name
	if s.modified {
		left += " [+]"
	}
	if s.changed {
		left += " [changed on disk]"
	}

	right := s.position()
	room := width - x - core.StringWidth(right) - 2
	backend.DrawText(b, x, row, x+max(room, 0), core.Truncate(left, room, "…"), s.styles.Bar)

	rx := width - core.StringWidth(right) - 1
	if rx > x {
		backend.DrawText(b, rx, row, width, right, s.styles.Bar)
	}
}

func (s *StatusLine) position() string {
	if s.rows == 0 || s.cols == 0 {
		return fmt.Sprintf("%d×%d", s.rows, s.cols)
	}
	return fmt.Sprintf("%s  %d×%d", grid.CellName(s.row, s.col), s.rows, s.cols)
}

func (s *StatusLine) renderMessage(b backend.Backend, row, width int) {
	style := s.styles.Message
	switch s.messageType {
	case MessageError:
		style = s.styles.Error
	case MessageWarning:
		style = s.styles.Warning
	}
	b.Fill(core.RectFromSize(row, 0, 1, width), core.EmptyCell())
	backend.DrawText(b, 0, row, width, core.Truncate(s.message, width, "…"), style)
}

func (s *StatusLine) renderPrompt(b backend.Backend, row, width int) {
	b.Fill(core.RectFromSize(row, 0, 1, width), core.StyledCell(s.styles.Prompt))

	label := s.promptLabel
	before := string(s.promptBuffer[:min(s.promptCursor, len(s.promptBuffer))])
	cursorX := core.StringWidth(label) + core.StringWidth(before)

	// Scroll the input left when the cursor would fall off screen.
	text := label + string(s.promptBuffer)
	offset := 0
	if cursorX >= width {
		offset = cursorX - width + 1
		text = dropWidth(text, offset)
	}
	backend.DrawText(b, 0, row, width, text, s.styles.Prompt)
	b.ShowCursor(cursorX-offset, row)
}

// dropWidth removes leading clusters until n display cells are gone.
func dropWidth(s string, n int) string {
	cells := core.CellsFromString(s, core.DefaultStyle())
	i := 0
	for i < len(cells) && n > 0 {
		n--
		i++
	}
	for i < len(cells) && cells[i].IsContinuation() {
		i++
	}
	return core.StringFromCells(cells[i:])
}
