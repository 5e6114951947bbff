package config

import (
	"sort"

	"github.com/dshills/hintjump/internal/config/layer"
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/hint/label"
	"github.com/dshills/hintjump/internal/scan"
)

// Section accessor methods return snapshot structs. A setting holding a
// value of the wrong type reads as its default.

// Hint input methods.
const (
	// InputKeystroke narrows on every key press.
	InputKeystroke = "keystroke"

	// InputPrompt collects the label in a text box.
	InputPrompt = "prompt"
)

// HintConfig holds the [hint] section.
type HintConfig struct {
	// Alphabet lists the label characters, most preferred first.
	Alphabet string

	// Length is "variable" or "fixed".
	Length string

	// FixedLength is the label length for the fixed policy.
	FixedLength int

	// Input is InputKeystroke or InputPrompt.
	Input string

	// Scope is "active" or "visible".
	Scope string

	WordPattern string
	LinePattern string

	// Script is an optional Lua file providing matchers and hooks.
	Script string
}

// Settings converts the section to session settings.
func (h HintConfig) Settings() (hint.Settings, error) {
	alphabet, err := label.ParseAlphabet(h.Alphabet)
	if err != nil {
		return hint.Settings{}, &ConfigError{Path: "hint.alphabet", Value: h.Alphabet, Err: err}
	}
	kind, err := label.ParseKind(h.Length)
	if err != nil {
		return hint.Settings{}, &ConfigError{Path: "hint.length", Value: h.Length, Err: err}
	}
	policy := label.VariablePolicy()
	if kind == label.KindFixed {
		policy = label.FixedPolicy(h.FixedLength)
	}
	if err := policy.Validate(); err != nil {
		return hint.Settings{}, &ConfigError{Path: "hint.fixed_length", Value: h.FixedLength, Err: err}
	}
	return hint.Settings{Alphabet: alphabet, Policy: policy}, nil
}

// ScanScope parses Scope.
func (h HintConfig) ScanScope() (scan.Scope, error) {
	scope, err := scan.ParseScope(h.Scope)
	if err != nil {
		return scope, &ConfigError{Path: "hint.scope", Value: h.Scope, Err: err}
	}
	return scope, nil
}

// ThemeConfig holds the [theme] section. Colors are names ("yellow"),
// palette indexes ("color208"), hex values or "default".
type ThemeConfig struct {
	LabelFg     string
	LabelBg     string
	TypedFg     string
	MatchBg     string
	GutterFg    string
	SeparatorFg string
}

// KeysConfig maps action names to key specifications.
type KeysConfig map[string][]string

// Bindings returns the key specifications for action.
func (k KeysConfig) Bindings(action string) []string {
	return k[action]
}

// LoggingConfig holds the [logging] section.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string

	// File receives log records. Empty disables logging, since the
	// terminal belongs to the screen.
	File string
}

// ViewConfig holds the [view] section.
type ViewConfig struct {
	LineNumbers  bool
	TabWidth     int
	ScrollMargin int

	// ShowMatches highlights search matches next to their labels.
	ShowMatches bool
}

// Hint returns the [hint] section.
func (c *Config) Hint() HintConfig {
	m := c.Merged()
	return HintConfig{
		Alphabet:    stringOr(m, "hint.alphabet"),
		Length:      stringOr(m, "hint.length"),
		FixedLength: intOr(m, "hint.fixed_length"),
		Input:       stringOr(m, "hint.input"),
		Scope:       stringOr(m, "hint.scope"),
		WordPattern: stringOr(m, "hint.word_pattern"),
		LinePattern: stringOr(m, "hint.line_pattern"),
		Script:      stringOr(m, "hint.script"),
	}
}

// Theme returns the [theme] section.
func (c *Config) Theme() ThemeConfig {
	m := c.Merged()
	return ThemeConfig{
		LabelFg:     stringOr(m, "theme.label_fg"),
		LabelBg:     stringOr(m, "theme.label_bg"),
		TypedFg:     stringOr(m, "theme.typed_fg"),
		MatchBg:     stringOr(m, "theme.match_bg"),
		GutterFg:    stringOr(m, "theme.gutter_fg"),
		SeparatorFg: stringOr(m, "theme.separator_fg"),
	}
}

// Keys returns the [keys] section. Unknown actions are omitted.
func (c *Config) Keys() KeysConfig {
	m := c.Merged()
	keys := make(KeysConfig, len(Actions))
	for _, action := range Actions {
		keys[action] = sliceOr(m, "keys."+action)
	}
	return keys
}

// Logging returns the [logging] section.
func (c *Config) Logging() LoggingConfig {
	m := c.Merged()
	return LoggingConfig{
		Level: stringOr(m, "logging.level"),
		File:  stringOr(m, "logging.file"),
	}
}

// View returns the [view] section.
func (c *Config) View() ViewConfig {
	m := c.Merged()
	return ViewConfig{
		LineNumbers:  boolOr(m, "view.line_numbers"),
		TabWidth:     intOr(m, "view.tab_width"),
		ScrollMargin: intOr(m, "view.scroll_margin"),
		ShowMatches:  boolOr(m, "view.show_matches"),
	}
}

// sectionKeys returns the sorted keys of a section map, or of m itself
// when section is empty.
func sectionKeys(m map[string]any, section string) []string {
	sec := m
	if section != "" {
		sec, _ = m[section].(map[string]any)
	}
	keys := make([]string, 0, len(sec))
	for k := range sec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func lookup(m map[string]any, path string) any {
	if v, ok := layer.GetByPath(m, path); ok {
		return v
	}
	v, _ := layer.GetByPath(defaults, path)
	return v
}

func fallback(path string) any {
	v, _ := layer.GetByPath(defaults, path)
	return v
}

func stringOr(m map[string]any, path string) string {
	if s, err := toString(path, lookup(m, path)); err == nil {
		return s
	}
	s, _ := toString(path, fallback(path))
	return s
}

func intOr(m map[string]any, path string) int {
	if n, err := toInt(path, lookup(m, path)); err == nil {
		return n
	}
	n, _ := toInt(path, fallback(path))
	return n
}

func boolOr(m map[string]any, path string) bool {
	if b, err := toBool(path, lookup(m, path)); err == nil {
		return b
	}
	b, _ := toBool(path, fallback(path))
	return b
}

func sliceOr(m map[string]any, path string) []string {
	if s, err := toStringSlice(path, lookup(m, path)); err == nil {
		return s
	}
	s, _ := toStringSlice(path, fallback(path))
	return s
}
