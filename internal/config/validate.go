package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/hintjump/internal/config/layer"
	"github.com/dshills/hintjump/internal/input/key"
	"github.com/dshills/hintjump/internal/renderer/core"
	"github.com/dshills/hintjump/internal/scan"
)

// Logging levels accepted by logging.level.
var logLevels = []string{"debug", "info", "warn", "error"}

// validate checks a merged configuration map and joins every problem
// found into one error.
func validate(m map[string]any) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, section := range sectionKeys(m, "") {
		def, known := defaults[section]
		if !known {
			add(&ConfigError{Path: section, Value: m[section], Err: errors.New("unknown section")})
			continue
		}
		if _, isMap := m[section].(map[string]any); !isMap {
			add(&ConfigError{Path: section, Value: m[section], Err: errors.New("must be a table")})
			continue
		}
		if section == "keys" {
			continue
		}
		for _, k := range sectionKeys(m, section) {
			if _, ok := def.(map[string]any)[k]; !ok {
				add(&ConfigError{Path: section + "." + k, Value: m[section].(map[string]any)[k],
					Err: errors.New("unknown setting")})
			}
		}
	}

	// Types next; a mistyped value reads as its default below.
	for path, want := range settingTypes() {
		v, ok := layer.GetByPath(m, path)
		if !ok {
			continue
		}
		if err := checkType(path, want, v); err != nil {
			add(&ConfigError{Path: path, Value: v, Err: err})
		}
	}

	c := &Config{layers: layer.NewManager()}
	c.layers.SetLayer(layer.NewLayerWithData("candidate", layer.SourceBuiltin, 0, m))

	h := c.Hint()
	if _, err := h.Settings(); err != nil {
		add(err)
	}
	if _, err := h.ScanScope(); err != nil {
		add(err)
	}
	if h.Input != InputKeystroke && h.Input != InputPrompt {
		add(&ConfigError{Path: "hint.input", Value: h.Input,
			Err: fmt.Errorf("must be %q or %q", InputKeystroke, InputPrompt)})
	}
	for path, pattern := range map[string]string{"hint.word_pattern": h.WordPattern, "hint.line_pattern": h.LinePattern} {
		if _, err := scan.NewRegexpMatcher(pattern); err != nil {
			add(&ConfigError{Path: path, Value: pattern, Err: err})
		}
	}

	t := c.Theme()
	for path, color := range map[string]string{
		"theme.label_fg":     t.LabelFg,
		"theme.label_bg":     t.LabelBg,
		"theme.typed_fg":     t.TypedFg,
		"theme.match_bg":     t.MatchBg,
		"theme.gutter_fg":    t.GutterFg,
		"theme.separator_fg": t.SeparatorFg,
	} {
		if _, err := core.ParseColor(color); err != nil {
			add(&ConfigError{Path: path, Value: color, Err: err})
		}
	}

	for _, action := range sectionKeys(m, "keys") {
		if !knownAction(action) {
			add(&ConfigError{Path: "keys." + action, Value: m["keys"].(map[string]any)[action],
				Err: errors.New("unknown action")})
		}
	}
	for action, specs := range c.Keys() {
		for _, spec := range specs {
			if _, err := key.Parse(spec); err != nil {
				add(&ConfigError{Path: "keys." + action, Value: spec, Err: err})
			}
		}
	}

	l := c.Logging()
	if !oneOf(l.Level, logLevels) {
		add(&ConfigError{Path: "logging.level", Value: l.Level,
			Err: fmt.Errorf("must be one of %s", strings.Join(logLevels, ", "))})
	}

	v := c.View()
	if v.TabWidth < 1 || v.TabWidth > 16 {
		add(&ConfigError{Path: "view.tab_width", Value: v.TabWidth, Err: errors.New("must be between 1 and 16")})
	}
	if v.ScrollMargin < 0 {
		add(&ConfigError{Path: "view.scroll_margin", Value: v.ScrollMargin, Err: errors.New("must not be negative")})
	}

	return errors.Join(errs...)
}

type settingType uint8

const (
	typeString settingType = iota
	typeInt
	typeBool
	typeStrings
)

// settingTypes returns the expected type of every scalar setting.
func settingTypes() map[string]settingType {
	types := map[string]settingType{
		"hint.fixed_length":  typeInt,
		"view.line_numbers":  typeBool,
		"view.tab_width":     typeInt,
		"view.scroll_margin": typeInt,
		"view.show_matches":  typeBool,
	}
	for _, section := range []string{"hint", "theme", "logging"} {
		for _, k := range sectionKeys(defaults, section) {
			path := section + "." + k
			if _, ok := types[path]; !ok {
				types[path] = typeString
			}
		}
	}
	for _, action := range Actions {
		types["keys."+action] = typeStrings
	}
	return types
}

func checkType(path string, want settingType, v any) error {
	var err error
	switch want {
	case typeString:
		_, err = toString(path, v)
	case typeInt:
		_, err = toInt(path, v)
	case typeBool:
		_, err = toBool(path, v)
	case typeStrings:
		_, err = toStringSlice(path, v)
	}
	return err
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
