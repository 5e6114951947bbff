package key

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/hintjump/internal/renderer/backend"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without Ctrl,
// Alt or Meta. Such events are label or prompt input.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.IsModified()
}

// IsModified returns true if any modifier is pressed.
// For character events, Shift alone is not considered modified
// (since Shift changes the character itself).
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the canonical form used for comparison: Shift is
// dropped from character events and Ctrl letters are lowercased.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	e.Modifiers = e.Modifiers.Without(ModShift)
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	a, b := e.Normalize(), other.Normalize()
	return a.Key == b.Key && a.Rune == b.Rune && a.Modifiers == b.Modifiers
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// String returns the canonical specification, e.g. "Ctrl+j", "Enter", "F".
// Parse(e.String()) equals e.
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		name = string(e.Rune)
		for n, r := range runeNameMap {
			if r == e.Rune && (r != '-' || e.Modifiers != ModNone) {
				name = strings.ToUpper(n[:1]) + n[1:]
				break
			}
		}
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}

// backendKeys maps backend special keys to Keys.
var backendKeys = map[backend.Key]Key{
	backend.KeyEscape:    KeyEscape,
	backend.KeyEnter:     KeyEnter,
	backend.KeyTab:       KeyTab,
	backend.KeyBackspace: KeyBackspace,
	backend.KeyDelete:    KeyDelete,
	backend.KeyInsert:    KeyInsert,
	backend.KeyHome:      KeyHome,
	backend.KeyEnd:       KeyEnd,
	backend.KeyPageUp:    KeyPageUp,
	backend.KeyPageDown:  KeyPageDown,
	backend.KeyUp:        KeyUp,
	backend.KeyDown:      KeyDown,
	backend.KeyLeft:      KeyLeft,
	backend.KeyRight:     KeyRight,
	backend.KeyF1:        KeyF1,
	backend.KeyF2:        KeyF2,
	backend.KeyF3:        KeyF3,
	backend.KeyF4:        KeyF4,
	backend.KeyF5:        KeyF5,
	backend.KeyF6:        KeyF6,
	backend.KeyF7:        KeyF7,
	backend.KeyF8:        KeyF8,
	backend.KeyF9:        KeyF9,
	backend.KeyF10:       KeyF10,
	backend.KeyF11:       KeyF11,
	backend.KeyF12:       KeyF12,
}

// FromBackend converts a terminal key event. Ctrl+letter keys become the
// letter with ModCtrl. ok is false for non-key events.
func FromBackend(ev backend.Event) (Event, bool) {
	if ev.Type != backend.EventKey {
		return Event{}, false
	}

	var mods Modifier
	if ev.Mod.Has(backend.ModShift) {
		mods |= ModShift
	}
	if ev.Mod.Has(backend.ModCtrl) {
		mods |= ModCtrl
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods |= ModAlt
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods |= ModMeta
	}

	switch {
	case ev.Key == backend.KeyRune:
		return NewRuneEvent(ev.Rune, mods).Normalize(), true
	case ev.Key == backend.KeyCtrlSpace:
		return NewRuneEvent(' ', mods|ModCtrl), true
	case ev.Key >= backend.KeyCtrlA && ev.Key <= backend.KeyCtrlZ:
		return NewRuneEvent('a'+rune(ev.Key-backend.KeyCtrlA), mods|ModCtrl).Normalize(), true
	}
	if k, ok := backendKeys[ev.Key]; ok {
		return NewSpecialEvent(k, mods), true
	}
	return Event{}, false
}
