// Package key parses and formats key specifications.
//
// A specification names one key press. Several notations are accepted:
//
//   - Simple keys: "a", ":", "Enter", "Escape", "F5"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<CR>", "<Esc>"
//
// Parsed specifications and terminal events are normalized to the same
// Event form so they can be compared directly: control chords carry a
// lowercase rune and printable runes never carry Shift.
package key
