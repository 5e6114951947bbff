package hint

import (
	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/hint/label"
)

// Mode is the session state.
type Mode uint8

const (
	// ModeInactive means no hints are shown.
	ModeInactive Mode = iota

	// ModeWordHint labels word starts.
	ModeWordHint

	// ModeLineHint labels line starts.
	ModeLineHint

	// ModeSearchHint labels matches of a search query.
	ModeSearchHint
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeInactive:
		return "inactive"
	case ModeWordHint:
		return "word"
	case ModeLineHint:
		return "line"
	case ModeSearchHint:
		return "search"
	default:
		return "unknown"
	}
}

// IsActive reports whether m is one of the hint modes.
func (m Mode) IsActive() bool {
	return m == ModeWordHint || m == ModeLineHint || m == ModeSearchHint
}

// Target is a navigable location: a position when Start == End, otherwise
// the range [Start, End).
type Target struct {
	Start buffer.Point
	End   buffer.Point
}

// PositionTarget returns a target at p.
func PositionTarget(p buffer.Point) Target {
	return Target{Start: p, End: p}
}

// RangeTarget returns a target covering [start, end).
func RangeTarget(start, end buffer.Point) Target {
	return Target{Start: start, End: end}
}

// IsRange reports whether the target covers text.
func (t Target) IsRange() bool {
	return t.Start != t.End
}

// Candidates is what a scanner found in one editor.
type Candidates struct {
	// Editor identifies the editor the targets belong to.
	Editor string

	// Targets are ordered as they should be labeled.
	Targets []Target

	// Reserved runes must not appear in labels. Search mode reports the
	// characters that directly follow each match here.
	Reserved []rune
}

// Group pairs an editor's targets with their labels.
// Labels may be shorter than Targets when the alphabet ran out; the excess
// targets are unreachable for the activation.
type Group struct {
	Editor  string
	Targets []Target
	Labels  []string
}

// Hint is one labeled target handed to a Layer for drawing.
type Hint struct {
	Target Target
	Label  string

	// Typed is how many leading runes of Label the user has already typed.
	Typed int
}

// Jump records a committed navigation.
type Jump struct {
	SessionID string
	Mode      Mode
	Editor    string
	Target    Target
	Label     string
}

// Settings controls label allocation.
type Settings struct {
	Alphabet []rune
	Policy   label.Policy
}

// DefaultAlphabet puts home-row keys first.
const DefaultAlphabet = "asdfghjklqwertyuiopzxcvbnm"

// DefaultSettings returns the default variable-length settings.
func DefaultSettings() Settings {
	return Settings{
		Alphabet: []rune(DefaultAlphabet),
		Policy:   label.VariablePolicy(),
	}
}

// Validate reports configuration errors.
func (s Settings) Validate() error {
	if err := label.ValidateAlphabet(s.Alphabet); err != nil {
		return err
	}
	return s.Policy.Validate()
}

// Scanner discovers targets for an activation.
type Scanner interface {
	// Scan returns one Candidates entry per participating editor.
	// query is only meaningful for ModeSearchHint.
	Scan(mode Mode, query string) ([]Candidates, error)
}

// Renderer allocates drawing layers.
type Renderer interface {
	// Acquire returns a layer drawing over the given editor.
	Acquire(editor string, mode Mode) (Layer, error)
}

// Layer is a rendering resource owned by a session for one editor.
type Layer interface {
	// Draw replaces whatever the layer shows with hints.
	// An empty slice clears the layer.
	Draw(hints []Hint)

	// Release frees the layer. The session calls it exactly once.
	Release()
}

// CursorMover commits a jump.
type CursorMover interface {
	MoveTo(editor string, target Target) error
}

// Logger is the logging surface the session writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
