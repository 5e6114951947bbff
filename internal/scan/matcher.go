package scan

import (
	"errors"
	"fmt"
	"regexp"
)

// Default patterns.
const (
	// DefaultWordPattern targets the start of every word.
	DefaultWordPattern = `\w+`

	// DefaultLinePattern targets the first non-blank character of a line,
	// or the end of a blank line.
	DefaultLinePattern = `^\s*(\S|$)`
)

// ErrInvalidPattern indicates a matcher pattern failed to compile.
var ErrInvalidPattern = errors.New("invalid pattern")

// Matcher finds targets in a single line of text.
type Matcher interface {
	// Match returns [start, end) byte ranges within line.
	Match(line string) [][2]int
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(line string) [][2]int

// Match calls f(line).
func (f MatcherFunc) Match(line string) [][2]int {
	return f(line)
}

// RegexpMatcher matches a compiled regular expression.
// When the expression has a capture group, the target starts where the
// first group matched instead of at the start of the whole match.
type RegexpMatcher struct {
	re *regexp.Regexp
}

// NewRegexpMatcher compiles pattern.
func NewRegexpMatcher(pattern string) (*RegexpMatcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	return &RegexpMatcher{re: re}, nil
}

// MustRegexpMatcher is like NewRegexpMatcher but panics on error.
func MustRegexpMatcher(pattern string) *RegexpMatcher {
	m, err := NewRegexpMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the source pattern.
func (m *RegexpMatcher) String() string {
	return m.re.String()
}

// Match implements Matcher.
func (m *RegexpMatcher) Match(line string) [][2]int {
	locs := m.re.FindAllStringSubmatchIndex(line, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if len(loc) >= 4 && loc[2] >= 0 {
			start = loc[2]
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

// literalMatcher finds a fixed string, ignoring case.
type literalMatcher struct {
	re *regexp.Regexp
}

// newLiteralMatcher returns a matcher for query. Metacharacters in query are
// matched literally.
func newLiteralMatcher(query string) *literalMatcher {
	return &literalMatcher{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))}
}

func (m *literalMatcher) Match(line string) [][2]int {
	locs := m.re.FindAllStringIndex(line, -1)
	out := make([][2]int, 0, len(locs))
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		out = append(out, [2]int{loc[0], loc[1]})
	}
	return out
}
