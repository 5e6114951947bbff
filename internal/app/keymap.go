package app

import (
	"fmt"

	"github.com/dshills/hintjump/internal/config"
	"github.com/dshills/hintjump/internal/input/key"
)

// binding pairs a parsed key with the action it triggers.
type binding struct {
	event  key.Event
	action string
}

// Keymap resolves key presses to configured actions. When two actions
// share a key the one listed first in config.Actions wins.
type Keymap struct {
	bindings []binding
}

// NewKeymap parses every binding in keys.
func NewKeymap(keys config.KeysConfig) (*Keymap, error) {
	km := &Keymap{}
	for _, action := range config.Actions {
		for _, spec := range keys.Bindings(action) {
			ev, err := key.Parse(spec)
			if err != nil {
				return nil, fmt.Errorf("keys.%s: %w", action, err)
			}
			km.bindings = append(km.bindings, binding{event: ev, action: action})
		}
	}
	return km, nil
}

// Lookup returns the action bound to ev.
func (km *Keymap) Lookup(ev key.Event) (string, bool) {
	for _, b := range km.bindings {
		if b.event.Equals(ev) {
			return b.action, true
		}
	}
	return "", false
}

// Is reports whether ev is bound to action.
func (km *Keymap) Is(ev key.Event, action string) bool {
	for _, b := range km.bindings {
		if b.action == action && b.event.Equals(ev) {
			return true
		}
	}
	return false
}

// Keys returns the canonical key names bound to action.
func (km *Keymap) Keys(action string) []string {
	var out []string
	for _, b := range km.bindings {
		if b.action == action {
			out = append(out, b.event.String())
		}
	}
	return out
}
