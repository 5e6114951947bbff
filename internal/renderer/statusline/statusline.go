// Package statusline provides the status line and prompt line UI components.
package statusline

import (
	"fmt"

	"github.com/dshills/hintjump/internal/renderer/backend"
	"github.com/dshills/hintjump/internal/renderer/core"
)

// StatusLine renders the bottom status line including mode display and the
// search prompt.
type StatusLine struct {
	// Display state
	mode     string // Current mode name (e.g., "NORMAL", "WORD")
	filename string // Focused pane's file (empty for scratch)
	line     uint32 // Cursor line (1-indexed for display)
	col      uint32 // Cursor column (1-indexed for display)
	hint     string // Typed label prefix while hints are shown

	// Prompt state
	promptActive bool
	promptLabel  string
	promptText   string
	promptCursor int // Cursor position in runes

	// Message display
	message     string
	messageType MessageType

	// Style configuration
	modeStyles map[string]core.Style
	barStyle   core.Style

	width int
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		mode:       "NORMAL",
		modeStyles: defaultModeStyles(),
		barStyle:   core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite),
	}
}

// defaultModeStyles returns default styles for each mode.
func defaultModeStyles() map[string]core.Style {
	return map[string]core.Style{
		"NORMAL": core.DefaultStyle().Bold().WithBackground(core.ColorBlue).WithForeground(core.ColorWhite),
		"WORD":   core.DefaultStyle().Bold().WithBackground(core.ColorGreen).WithForeground(core.ColorBlack),
		"LINE":   core.DefaultStyle().Bold().WithBackground(core.ColorMagenta).WithForeground(core.ColorWhite),
		"SEARCH": core.DefaultStyle().Bold().WithBackground(core.ColorYellow).WithForeground(core.ColorBlack),
	}
}

// SetModeStyle overrides the style used for a mode.
func (s *StatusLine) SetModeStyle(mode string, style core.Style) {
	s.modeStyles[mode] = style
}

// SetBarStyle sets the style of the bar behind the file information.
func (s *StatusLine) SetBarStyle(style core.Style) {
	s.barStyle = style
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// Mode returns the displayed mode.
func (s *StatusLine) Mode() string {
	return s.mode
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col uint32) {
	s.line = line
	s.col = col
}

// SetHintInput shows the label prefix typed so far.
func (s *StatusLine) SetHintInput(text string) {
	s.hint = text
}

// SetPrompt activates the prompt line with a label such as "search".
func (s *StatusLine) SetPrompt(active bool, label string) {
	s.promptActive = active
	s.promptLabel = label
	if !active {
		s.promptText = ""
		s.promptCursor = 0
	}
}

// SetPromptText updates the prompt contents and cursor (in runes).
func (s *StatusLine) SetPromptText(text string, cursor int) {
	s.promptText = text
	s.promptCursor = cursor
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = width
}

// Height returns the number of rows the status line uses: the status bar
// and a row for the prompt or a message.
func (s *StatusLine) Height() int {
	return 2
}

// PromptActive reports whether the prompt row is shown.
func (s *StatusLine) PromptActive() bool {
	return s.promptActive
}

// Render draws the status bar at row-1 and the prompt or message at row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	s.renderStatusBar(b, row-1)
	switch {
	case s.promptActive:
		s.renderPrompt(b, row)
	case s.message != "":
		s.renderMessage(b, row)
	default:
		b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.EmptyCell())
	}
}

// renderStatusBar renders the mode and file info line.
func (s *StatusLine) renderStatusBar(b backend.Backend, row int) {
	modeStyle, ok := s.modeStyles[s.mode]
	if !ok {
		modeStyle = core.DefaultStyle().Bold().WithBackground(core.ColorGray)
	}

	b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.Cell{Rune: ' ', Width: 1, Style: s.barStyle})

	col := s.put(b, 0, row, " "+s.mode+" ", modeStyle, s.width)
	col = s.put(b, col, row, " ", s.barStyle, s.width)

	filename := s.filename
	if filename == "" {
		filename = "[No Name]"
	}

	// The file name keeps priority. The right side shrinks, then goes.
	nameEnd := col + core.StringWidth(filename)
	right := s.fitRight(s.width - nameEnd - 2)
	limit := s.width
	rightStart := s.width
	if right != "" {
		rightStart = s.width - core.StringWidth(right) - 1
		limit = rightStart - 1
	}
	s.put(b, col, row, filename, s.barStyle, limit)
	if right != "" {
		s.put(b, rightStart, row, right, s.barStyle, s.width)
	}
}

// fitRight returns the widest form of the hint input and position that is
// at most room cells wide, or "".
func (s *StatusLine) fitRight(room int) string {
	prefix := ""
	if s.hint != "" {
		prefix = "[" + s.hint + "]"
	}
	candidates := []string{
		joinNonEmpty(prefix, s.formatPosition()),
		joinNonEmpty(prefix, fmt.Sprintf("%d:%d", max(s.line, 1), max(s.col, 1))),
		prefix,
	}
	for _, c := range candidates {
		if c != "" && core.StringWidth(c) <= room {
			return c
		}
	}
	return ""
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

// renderPrompt renders the prompt input line.
func (s *StatusLine) renderPrompt(b backend.Backend, row int) {
	style := core.DefaultStyle()
	b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.EmptyCell())

	prefix := s.promptLabel + ": "
	col := s.put(b, 0, row, prefix, style.Bold(), s.width)
	s.put(b, col, row, s.promptText, style, s.width)

	cursor := col + core.StringWidth(string([]rune(s.promptText)[:min(s.promptCursor, len([]rune(s.promptText)))]))
	b.ShowCursor(min(cursor, s.width-1), row)
}

// renderMessage renders a status message.
func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	var msgStyle core.Style
	switch s.messageType {
	case MessageError:
		msgStyle = core.DefaultStyle().WithForeground(core.ColorRed).Bold()
	case MessageWarning:
		msgStyle = core.DefaultStyle().WithForeground(core.ColorYellow)
	default:
		msgStyle = core.DefaultStyle()
	}

	b.Fill(core.ScreenRect{Top: row, Left: 0, Bottom: row + 1, Right: s.width}, core.Cell{Rune: ' ', Width: 1, Style: msgStyle})
	s.put(b, 0, row, s.message, msgStyle, s.width)
}

// put draws text from col, stopping before limit, and returns the column
// after the last cell drawn.
func (s *StatusLine) put(b backend.Backend, col, row int, text string, style core.Style, limit int) int {
	for _, cell := range core.CellsFromString(text, style) {
		if col >= limit {
			break
		}
		if !cell.IsContinuation() {
			b.SetCell(col, row, cell)
		}
		col++
	}
	return col
}

// formatPosition formats the position info for the right side.
func (s *StatusLine) formatPosition() string {
	return fmt.Sprintf("Ln %d, Col %d", max(s.line, 1), max(s.col, 1))
}
