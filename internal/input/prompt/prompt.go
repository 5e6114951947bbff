// Package prompt implements the single-line modal text box used to type
// search queries and, in prompt input mode, hint labels.
package prompt

import (
	"unicode"

	"github.com/dshills/hintjump/internal/input/key"
)

// Action is what a key press asks the host to do with the prompt.
type Action int

const (
	// ActionNone means the prompt stays open.
	ActionNone Action = iota

	// ActionAccept means Enter was pressed.
	ActionAccept

	// ActionDismiss means Escape was pressed.
	ActionDismiss
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionDismiss:
		return "dismiss"
	default:
		return "none"
	}
}

// Outcome reports the effect of a key press.
type Outcome struct {
	// Changed is set when the value changed.
	Changed bool

	// Consumed is false for keys the prompt does not handle.
	Consumed bool

	Action Action
}

// DefaultHistorySize bounds the number of remembered entries.
const DefaultHistorySize = 50

// Prompt is a line editor with history.
type Prompt struct {
	active bool
	label  string

	// buffer holds the text being typed.
	buffer []rune

	// cursorPos is the cursor position within the buffer.
	cursorPos int

	// history holds previously accepted values, oldest first.
	history     []string
	historySize int

	// historyIndex is the current position in history (-1 = current input).
	historyIndex int

	// savedBuffer holds the buffer when navigating history.
	savedBuffer []rune
}

// New creates a closed prompt.
func New() *Prompt {
	return &Prompt{
		buffer:       make([]rune, 0, 64),
		historySize:  DefaultHistorySize,
		historyIndex: -1,
	}
}

// Open shows the prompt with an empty value.
func (p *Prompt) Open(label string) {
	p.active = true
	p.label = label
	p.Clear()
	p.historyIndex = -1
	p.savedBuffer = nil
}

// Close hides the prompt and clears its value.
func (p *Prompt) Close() {
	p.active = false
	p.label = ""
	p.Clear()
}

// Active reports whether the prompt is open.
func (p *Prompt) Active() bool {
	return p.active
}

// Label returns the label shown before the value.
func (p *Prompt) Label() string {
	return p.label
}

// Value returns the current text.
func (p *Prompt) Value() string {
	return string(p.buffer)
}

// SetValue replaces the text and moves the cursor to the end.
func (p *Prompt) SetValue(s string) {
	p.buffer = []rune(s)
	p.cursorPos = len(p.buffer)
}

// CursorPos returns the cursor position in runes.
func (p *Prompt) CursorPos() int {
	return p.cursorPos
}

// Clear empties the value.
func (p *Prompt) Clear() {
	p.buffer = p.buffer[:0]
	p.cursorPos = 0
}

// HandleKey applies a key press. Keys arriving while the prompt is closed
// are not consumed.
func (p *Prompt) HandleKey(ev key.Event) Outcome {
	if !p.active {
		return Outcome{}
	}

	switch {
	case ev.IsChar():
		p.insertRune(ev.Rune)
		return Outcome{Changed: true, Consumed: true}
	case ev.Key == key.KeyEnter:
		p.addToHistory(p.Value())
		return Outcome{Consumed: true, Action: ActionAccept}
	case ev.Key == key.KeyEscape:
		return Outcome{Consumed: true, Action: ActionDismiss}
	case ev.Key == key.KeyBackspace:
		return p.edit(p.backspace())
	case ev.Key == key.KeyDelete:
		return p.edit(p.delete())
	case ev.Key == key.KeyLeft:
		p.cursorPos = max(p.cursorPos-1, 0)
	case ev.Key == key.KeyRight:
		p.cursorPos = min(p.cursorPos+1, len(p.buffer))
	case ev.Key == key.KeyHome, ev.Matches("Ctrl+A"):
		p.cursorPos = 0
	case ev.Key == key.KeyEnd, ev.Matches("Ctrl+E"):
		p.cursorPos = len(p.buffer)
	case ev.Key == key.KeyUp:
		return p.edit(p.historyPrev())
	case ev.Key == key.KeyDown:
		return p.edit(p.historyNext())
	case ev.Matches("Ctrl+U"):
		return p.edit(p.killToStart())
	case ev.Matches("Ctrl+W"):
		return p.edit(p.deleteWord())
	default:
		return Outcome{}
	}
	return Outcome{Consumed: true}
}

func (p *Prompt) edit(changed bool) Outcome {
	return Outcome{Changed: changed, Consumed: true}
}

// insertRune inserts a character at the cursor position.
func (p *Prompt) insertRune(r rune) {
	if p.cursorPos >= len(p.buffer) {
		p.buffer = append(p.buffer, r)
	} else {
		p.buffer = append(p.buffer[:p.cursorPos+1], p.buffer[p.cursorPos:]...)
		p.buffer[p.cursorPos] = r
	}
	p.cursorPos++
}

// backspace deletes the character before the cursor.
func (p *Prompt) backspace() bool {
	if p.cursorPos == 0 {
		return false
	}
	p.buffer = append(p.buffer[:p.cursorPos-1], p.buffer[p.cursorPos:]...)
	p.cursorPos--
	return true
}

// delete deletes the character at the cursor.
func (p *Prompt) delete() bool {
	if p.cursorPos >= len(p.buffer) {
		return false
	}
	p.buffer = append(p.buffer[:p.cursorPos], p.buffer[p.cursorPos+1:]...)
	return true
}

// killToStart deletes everything before the cursor.
func (p *Prompt) killToStart() bool {
	if p.cursorPos == 0 {
		return false
	}
	p.buffer = append(p.buffer[:0], p.buffer[p.cursorPos:]...)
	p.cursorPos = 0
	return true
}

// deleteWord deletes the word before the cursor and any spaces after it.
func (p *Prompt) deleteWord() bool {
	start := p.cursorPos
	for start > 0 && unicode.IsSpace(p.buffer[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(p.buffer[start-1]) {
		start--
	}
	if start == p.cursorPos {
		return false
	}
	p.buffer = append(p.buffer[:start], p.buffer[p.cursorPos:]...)
	p.cursorPos = start
	return true
}

// addToHistory records an accepted value.
func (p *Prompt) addToHistory(s string) {
	if s == "" {
		return
	}
	// Don't add duplicates of the last entry
	if len(p.history) > 0 && p.history[len(p.history)-1] == s {
		return
	}
	p.history = append(p.history, s)
	if len(p.history) > p.historySize {
		p.history = p.history[len(p.history)-p.historySize:]
	}
}

// History returns accepted values, oldest first.
func (p *Prompt) History() []string {
	return append([]string(nil), p.history...)
}

// historyPrev moves to the previous history entry.
func (p *Prompt) historyPrev() bool {
	if len(p.history) == 0 {
		return false
	}

	switch {
	case p.historyIndex == -1:
		p.savedBuffer = append([]rune(nil), p.buffer...)
		p.historyIndex = len(p.history) - 1
	case p.historyIndex > 0:
		p.historyIndex--
	default:
		return false
	}

	p.SetValue(p.history[p.historyIndex])
	return true
}

// historyNext moves to the next history entry, restoring the typed text
// past the newest one.
func (p *Prompt) historyNext() bool {
	if p.historyIndex == -1 {
		return false
	}

	p.historyIndex++
	if p.historyIndex >= len(p.history) {
		p.historyIndex = -1
		p.SetValue(string(p.savedBuffer))
		p.savedBuffer = nil
	} else {
		p.SetValue(p.history[p.historyIndex])
	}
	return true
}
