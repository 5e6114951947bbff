package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/hintjump/internal/config"
	"github.com/dshills/hintjump/internal/engine/cursor"
	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/plugin/lua"
	"github.com/dshills/hintjump/internal/renderer"
	"github.com/dshills/hintjump/internal/renderer/core"
	"github.com/dshills/hintjump/internal/renderer/overlay"
	"github.com/dshills/hintjump/internal/scan"
)

// paneSource exposes the renderer's panes to the scanner.
type paneSource struct {
	r *renderer.Renderer
}

func (s paneSource) Active() scan.View {
	p := s.r.Focused()
	if p == nil {
		return nil
	}
	return p
}

// Visible lists the focused pane first so it receives the shortest labels.
func (s paneSource) Visible() []scan.View {
	focused := s.r.Focused()
	if focused == nil {
		return nil
	}
	views := []scan.View{focused}
	for _, p := range s.r.Panes() {
		if p != focused {
			views = append(views, p)
		}
	}
	return views
}

// scannerRef keeps the session's scanner fixed while reloads replace the
// matchers and scope behind it.
type scannerRef struct {
	cur *scan.Scanner
}

func (r *scannerRef) Scan(mode hint.Mode, query string) ([]hint.Candidates, error) {
	return r.cur.Scan(mode, query)
}

// paneMover commits jumps by moving the target pane's cursor and focus.
type paneMover struct {
	app *Application
}

func (m paneMover) MoveTo(editor string, target hint.Target) error {
	p, ok := m.app.renderer.Pane(editor)
	if !ok {
		return fmt.Errorf("move cursor: %w: %s", renderer.ErrUnknownPane, editor)
	}

	// Scrolling to the target is part of the jump, not a disruption.
	m.app.jumping = true
	defer func() { m.app.jumping = false }()

	p.SetSelection(cursor.Jump(p.Buffer(), target.Start, target.End))
	if err := m.app.renderer.SetFocus(editor); err != nil {
		return err
	}
	p.Viewport().EnsureVisible(target.Start.Line)
	return nil
}

// buildScanner creates a scanner for the [hint] section. Script matchers
// take precedence over the configured patterns.
func buildScanner(src scan.Source, hc config.HintConfig, script *lua.Script) (*scan.Scanner, error) {
	scope, err := hc.ScanScope()
	if err != nil {
		return nil, err
	}
	word, err := scan.NewRegexpMatcher(hc.WordPattern)
	if err != nil {
		return nil, &config.ConfigError{Path: "hint.word_pattern", Value: hc.WordPattern, Err: err}
	}
	line, err := scan.NewRegexpMatcher(hc.LinePattern)
	if err != nil {
		return nil, &config.ConfigError{Path: "hint.line_pattern", Value: hc.LinePattern, Err: err}
	}

	opts := []scan.Option{scan.WithScope(scope)}
	var wm, lm scan.Matcher = word, line
	if script != nil {
		if m, ok := script.WordMatcher(); ok {
			wm = m
		}
		if m, ok := script.LineMatcher(); ok {
			lm = m
		}
	}
	opts = append(opts, scan.WithWordMatcher(wm), scan.WithLineMatcher(lm))
	return scan.New(src, opts...), nil
}

// loadScript loads the configured Lua file, or returns nil when none is set.
func loadScript(path string, logger *Logger) (*lua.Script, error) {
	if path == "" {
		return nil, nil
	}
	script, err := lua.Load(expandHome(path), lua.WithLogger(logger.WithComponent("lua")))
	if err != nil {
		return nil, NewOperationError("load", path, err).WithContext("hint.script")
	}
	return script, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// themeStyles holds the parsed [theme] section.
type themeStyles struct {
	overlay   overlay.Config
	gutter    core.Style
	separator core.Style
}

// parseTheme converts theme colors to renderer styles.
func parseTheme(theme config.ThemeConfig, view config.ViewConfig) (themeStyles, error) {
	colors := []struct {
		path  string
		value string
	}{
		{path: "theme.label_fg", value: theme.LabelFg},
		{path: "theme.label_bg", value: theme.LabelBg},
		{path: "theme.typed_fg", value: theme.TypedFg},
		{path: "theme.match_bg", value: theme.MatchBg},
		{path: "theme.gutter_fg", value: theme.GutterFg},
		{path: "theme.separator_fg", value: theme.SeparatorFg},
	}
	parsed := make([]core.Color, len(colors))
	for i, c := range colors {
		color, err := core.ParseColor(c.value)
		if err != nil {
			return themeStyles{}, &config.ConfigError{Path: c.path, Value: c.value, Err: err}
		}
		parsed[i] = color
	}
	labelFg, labelBg, typedFg, matchBg, gutterFg, separatorFg :=
		parsed[0], parsed[1], parsed[2], parsed[3], parsed[4], parsed[5]

	return themeStyles{
		overlay: overlay.Config{
			LabelStyle:  core.NewStyle(labelFg).WithBackground(labelBg).Bold(),
			TypedStyle:  core.NewStyle(typedFg).WithBackground(labelBg),
			MatchStyle:  core.DefaultStyle().WithBackground(matchBg),
			ShowMatches: view.ShowMatches,
		},
		gutter:    core.NewStyle(gutterFg),
		separator: core.NewStyle(separatorFg),
	}, nil
}
