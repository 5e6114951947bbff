package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hintjump/internal/scan"
)

// Hook and matcher names a script may define.
const (
	FuncWordTargets = "word_targets"
	FuncLineTargets = "line_targets"
	FuncOnJump      = "on_jump"
)

// Logger receives script output and call failures.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// Script is a loaded user script.
type Script struct {
	name   string
	state  *State
	logger Logger
}

// ScriptOption configures a Script.
type ScriptOption func(*scriptConfig)

type scriptConfig struct {
	logger    Logger
	stateOpts []StateOption
}

// WithLogger sets the logger for print output and errors.
func WithLogger(l Logger) ScriptOption {
	return func(c *scriptConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) ScriptOption {
	return func(c *scriptConfig) {
		c.stateOpts = append(c.stateOpts, opts...)
	}
}

func newScript(name string, opts []ScriptOption) *Script {
	cfg := scriptConfig{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger
	stateOpts := append([]StateOption{WithPrint(func(s string) {
		logger.Info("script %s: %s", name, s)
	})}, cfg.stateOpts...)

	return &Script{
		name:   name,
		state:  NewState(stateOpts...),
		logger: logger,
	}
}

// Load runs the script file at path.
func Load(path string, opts ...ScriptOption) (*Script, error) {
	s := newScript(path, opts)
	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs Lua source under the given name.
func LoadString(name, code string, opts ...ScriptOption) (*Script, error) {
	s := newScript(name, opts)
	if err := s.state.DoString(code); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return s, nil
}

// Name returns the script path or name.
func (s *Script) Name() string {
	return s.name
}

// WordMatcher returns a matcher backed by word_targets, if defined.
func (s *Script) WordMatcher() (scan.Matcher, bool) {
	return s.matcher(FuncWordTargets)
}

// LineMatcher returns a matcher backed by line_targets, if defined.
func (s *Script) LineMatcher() (scan.Matcher, bool) {
	return s.matcher(FuncLineTargets)
}

func (s *Script) matcher(fn string) (scan.Matcher, bool) {
	if !s.state.HasFunction(fn) {
		return nil, false
	}
	return scan.MatcherFunc(func(line string) [][2]int {
		ret, err := s.state.Call(fn, lua.LString(line))
		if err != nil {
			s.logger.Warn("script %s: %s: %v", s.name, fn, err)
			return nil
		}
		return toColumns(ret, len(line))
	}), true
}

// JumpEvent describes a committed jump in 0-based coordinates.
type JumpEvent struct {
	Editor string
	Line   uint32
	Column uint32
	Label  string
}

// OnJump calls on_jump with 1-based coordinates. It does nothing when the
// script does not define the hook.
func (s *Script) OnJump(ev JumpEvent) error {
	if !s.state.HasFunction(FuncOnJump) {
		return nil
	}
	_, err := s.state.Call(FuncOnJump,
		lua.LString(ev.Editor),
		lua.LNumber(ev.Line+1),
		lua.LNumber(ev.Column+1),
		lua.LString(ev.Label),
	)
	if err != nil {
		return fmt.Errorf("script %s: %s: %w", s.name, FuncOnJump, err)
	}
	return nil
}

// Close releases the script state.
func (s *Script) Close() error {
	return s.state.Close()
}
