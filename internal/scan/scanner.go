package scan

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/hint"
)

// ErrUnknownScope indicates an unrecognized scope name.
var ErrUnknownScope = errors.New("unknown scope")

// Scope selects which views participate in an activation.
type Scope uint8

const (
	// ScopeActive scans only the focused view.
	ScopeActive Scope = iota

	// ScopeVisible scans every visible view.
	ScopeVisible
)

// String returns the configuration name of the scope.
func (s Scope) String() string {
	if s == ScopeVisible {
		return "visible"
	}
	return "active"
}

// ParseScope parses "active" or "visible". The empty string is ScopeActive.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "active":
		return ScopeActive, nil
	case "visible":
		return ScopeVisible, nil
	default:
		return ScopeActive, fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// View is a window onto a document.
type View interface {
	// ID identifies the view. It is used as the hint editor name.
	ID() string

	// Buffer returns the displayed document.
	Buffer() *buffer.Buffer

	// VisibleLines returns the first and last line on screen, inclusive.
	VisibleLines() (top, bottom uint32)
}

// Source supplies the views to scan.
type Source interface {
	// Active returns the focused view, or nil.
	Active() View

	// Visible returns every view on screen in display order.
	Visible() []View
}

// Scanner implements hint.Scanner over a Source.
type Scanner struct {
	source Source
	word   Matcher
	line   Matcher
	scope  Scope
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWordMatcher replaces the word matcher.
func WithWordMatcher(m Matcher) Option {
	return func(s *Scanner) {
		if m != nil {
			s.word = m
		}
	}
}

// WithLineMatcher replaces the line matcher.
func WithLineMatcher(m Matcher) Option {
	return func(s *Scanner) {
		if m != nil {
			s.line = m
		}
	}
}

// WithScope sets the scanned views.
func WithScope(scope Scope) Option {
	return func(s *Scanner) {
		s.scope = scope
	}
}

// New creates a scanner using the default patterns.
func New(source Source, opts ...Option) *Scanner {
	s := &Scanner{
		source: source,
		word:   MustRegexpMatcher(DefaultWordPattern),
		line:   MustRegexpMatcher(DefaultLinePattern),
		scope:  ScopeActive,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scope returns the configured scope.
func (s *Scanner) Scope() Scope {
	return s.scope
}

// Scan implements hint.Scanner.
func (s *Scanner) Scan(mode hint.Mode, query string) ([]hint.Candidates, error) {
	views := s.views()
	out := make([]hint.Candidates, 0, len(views))

	switch mode {
	case hint.ModeWordHint:
		for _, v := range views {
			out = append(out, scanPositions(v, s.word))
		}
	case hint.ModeLineHint:
		for _, v := range views {
			out = append(out, scanPositions(v, s.line))
		}
	case hint.ModeSearchHint:
		var m Matcher
		if query != "" {
			m = newLiteralMatcher(query)
		}
		for _, v := range views {
			out = append(out, scanRanges(v, m))
		}
	default:
		return nil, fmt.Errorf("scan: %w: %s", hint.ErrInvalidMode, mode)
	}
	return out, nil
}

func (s *Scanner) views() []View {
	if s.source == nil {
		return nil
	}
	if s.scope == ScopeVisible {
		return s.source.Visible()
	}
	if v := s.source.Active(); v != nil {
		return []View{v}
	}
	return nil
}

// Range returns the lines scanned for v: the visible lines plus one on
// each side, clamped to the document.
func Range(v View) (first, last uint32) {
	top, bottom := v.VisibleLines()
	if bottom < top {
		top, bottom = bottom, top
	}
	count := v.Buffer().LineCount()
	if top > 0 {
		top--
	}
	bottom++
	if bottom > count-1 {
		bottom = count - 1
	}
	if top > bottom {
		top = bottom
	}
	return top, bottom
}

func scanPositions(v View, m Matcher) hint.Candidates {
	c := hint.Candidates{Editor: v.ID()}
	buf := v.Buffer()
	first, last := Range(v)
	for line := first; line <= last; line++ {
		for _, loc := range m.Match(buf.LineText(line)) {
			p := buffer.Point{Line: line, Column: uint32(loc[0])}
			c.Targets = append(c.Targets, hint.PositionTarget(p))
		}
	}
	return c
}

func scanRanges(v View, m Matcher) hint.Candidates {
	c := hint.Candidates{Editor: v.ID()}
	if m == nil {
		return c
	}
	buf := v.Buffer()
	first, last := Range(v)
	seen := make(map[rune]struct{})
	for line := first; line <= last; line++ {
		text := buf.LineText(line)
		for _, loc := range m.Match(text) {
			c.Targets = append(c.Targets, hint.RangeTarget(
				buffer.Point{Line: line, Column: uint32(loc[0])},
				buffer.Point{Line: line, Column: uint32(loc[1])},
			))
			if loc[1] >= len(text) {
				continue
			}
			r, _ := utf8.DecodeRuneInString(text[loc[1]:])
			r = unicode.ToLower(r)
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				c.Reserved = append(c.Reserved, r)
			}
		}
	}
	return c
}
