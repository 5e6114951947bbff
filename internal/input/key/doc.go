// Package key provides key event types and keybinding parsing.
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta flags
//   - Event: a single key press
//
// # Key Specifications
//
// Bindings in the configuration can be written as:
//
//   - Simple keys: "f", "F", "Enter", "Escape"
//   - With modifiers: "Ctrl+J", "Alt+W", "Ctrl+Shift+Up"
//   - Vim-style: "<C-j>", "<A-w>", "<CR>", "<Esc>"
//
// Events read from the terminal are converted with FromBackend, after which
// they compare equal to the parsed specification.
package key
