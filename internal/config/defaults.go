package config

import (
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/scan"
)

// defaultConfig returns the built-in configuration layer.
func defaultConfig() map[string]any {
	return map[string]any{
		"hint": map[string]any{
			"alphabet":     hint.DefaultAlphabet,
			"length":       "variable",
			"fixed_length": 2,
			"input":        InputKeystroke,
			"scope":        "active",
			"word_pattern": scan.DefaultWordPattern,
			"line_pattern": scan.DefaultLinePattern,
			"script":       "",
		},
		"theme": map[string]any{
			"label_fg":     "#000000",
			"label_bg":     "#ffc850",
			"typed_fg":     "#5a5a5a",
			"match_bg":     "#465a8c",
			"gutter_fg":    "color244",
			"separator_fg": "gray",
		},
		"keys": map[string]any{
			ActionWordHint:   []any{"f", "Ctrl+J"},
			ActionLineHint:   []any{"g", "Ctrl+L"},
			ActionSearchHint: []any{"/"},
			ActionCancel:     []any{"Escape", "Ctrl+G"},
			ActionNextPane:   []any{"Tab", "Ctrl+N"},
			ActionPrevPane:   []any{"Ctrl+P"},
			ActionScrollDown: []any{"j", "Down"},
			ActionScrollUp:   []any{"k", "Up"},
			ActionPageDown:   []any{"PageDown", "Space"},
			ActionPageUp:     []any{"PageUp"},
			ActionReload:     []any{"Ctrl+R"},
			ActionQuit:       []any{"q", "Ctrl+Q"},
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
		"view": map[string]any{
			"line_numbers":  true,
			"tab_width":     4,
			"scroll_margin": 3,
			"show_matches":  true,
		},
	}
}

var defaults = defaultConfig()
