package hint

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/hintjump/internal/hint/label"
	"github.com/dshills/hintjump/internal/hint/narrow"
)

// Session holds the state of one jump-to-hint interaction.
// A host keeps a single Session and reuses it across activations.
type Session struct {
	scanner  Scanner
	renderer Renderer
	mover    CursorMover
	logger   Logger
	settings Settings
	newID    func() string

	mode   Mode
	id     string
	groups []Group
	layers []Layer
	input  string
	result narrow.Result

	lastJump *Jump
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettings sets the label settings.
func WithSettings(settings Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

// WithIDFunc overrides how activation IDs are generated.
func WithIDFunc(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewSession creates an inactive session. All collaborators are required.
func NewSession(scanner Scanner, renderer Renderer, mover CursorMover, opts ...Option) *Session {
	s := &Session{
		scanner:  scanner,
		renderer: renderer,
		mover:    mover,
		logger:   nopLogger{},
		settings: DefaultSettings(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the current label settings.
func (s *Session) Settings() Settings {
	return s.settings
}

// SetSettings replaces the label settings. They take effect on the next
// activation; an active session keeps its labels.
func (s *Session) SetSettings(settings Settings) {
	s.settings = settings
}

// Mode returns the current state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Active reports whether hints are shown.
func (s *Session) Active() bool {
	return s.mode.IsActive()
}

// ID returns the activation ID, or "" when inactive.
func (s *Session) ID() string {
	return s.id
}

// InputText returns the typed input buffer.
func (s *Session) InputText() string {
	return s.input
}

// Result returns the latest classification.
func (s *Session) Result() narrow.Result {
	return s.result
}

// Groups returns a copy of the captured targets and labels.
func (s *Session) Groups() []Group {
	out := make([]Group, len(s.groups))
	for i, g := range s.groups {
		out[i] = Group{
			Editor:  g.Editor,
			Targets: append([]Target(nil), g.Targets...),
			Labels:  append([]string(nil), g.Labels...),
		}
	}
	return out
}

// LastJump returns the most recent committed jump.
func (s *Session) LastJump() (Jump, bool) {
	if s.lastJump == nil {
		return Jump{}, false
	}
	return *s.lastJump, true
}

// Activate starts a hint session in mode. Any active session is finalized
// first. query is the search text for ModeSearchHint and ignored otherwise.
//
// On error the session is left inactive with no layers held.
func (s *Session) Activate(mode Mode, query string) error {
	if !mode.IsActive() {
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	s.Finalize()

	if err := s.settings.Validate(); err != nil {
		return &ActivationError{Mode: mode, Op: "settings", Err: fmt.Errorf("%w: %w", ErrConfig, err)}
	}

	found, err := s.scanner.Scan(mode, query)
	if err != nil {
		return &ActivationError{Mode: mode, Op: "scan", Err: err}
	}

	alphabet := s.settings.Alphabet
	total := 0
	sizes := make([]int, len(found))
	var reserved []rune
	for i, c := range found {
		sizes[i] = len(c.Targets)
		total += len(c.Targets)
		reserved = append(reserved, c.Reserved...)
	}
	if mode == ModeSearchHint {
		alphabet = label.Exclude(alphabet, reserved)
	}

	labels := label.Generate(alphabet, total, s.settings.Policy)
	perGroup := label.Distribute(labels, sizes)

	s.mode = mode
	s.id = s.newID()
	s.input = ""
	s.groups = make([]Group, len(found))
	for i, c := range found {
		s.groups[i] = Group{
			Editor:  c.Editor,
			Targets: append([]Target(nil), c.Targets...),
			Labels:  perGroup[i],
		}
	}

	if len(labels) < total {
		s.logger.Warn("hint %s: %d of %d targets unlabeled (alphabet %d runes, policy %s)",
			s.id, total-len(labels), total, len(alphabet), s.settings.Policy)
	}

	s.layers = make([]Layer, 0, len(s.groups))
	for _, g := range s.groups {
		layer, err := s.renderer.Acquire(g.Editor, mode)
		if err != nil {
			s.Finalize()
			return &ActivationError{Mode: mode, Op: "render", Err: err}
		}
		s.layers = append(s.layers, layer)
	}

	s.logger.Info("hint %s: activated %s mode, %d targets in %d editors", s.id, mode, total, len(s.groups))
	s.result = narrow.Classify(s.labels(), "")
	s.draw()
	return nil
}

// Input appends ch to the input buffer and reclassifies.
func (s *Session) Input(ch rune) (narrow.Capability, error) {
	if !s.Active() {
		return narrow.NotMatch, ErrNotActive
	}
	s.input = narrow.Append(s.input, ch)
	return s.step(), nil
}

// SetInput replaces the whole input buffer, as a modal text box does when
// its value changes, and reclassifies.
func (s *Session) SetInput(text string) (narrow.Capability, error) {
	if !s.Active() {
		return narrow.NotMatch, ErrNotActive
	}
	s.input = text
	return s.step(), nil
}

// Backspace removes the last typed rune and reclassifies. With nothing left
// to remove the session is cancelled and the signal is narrow.Cancel.
// Reclassifying can commit a jump when the shorter input leaves a single
// candidate, in which case the capability is narrow.CanNavigate.
func (s *Session) Backspace() (narrow.Capability, narrow.UndoSignal, error) {
	if !s.Active() {
		return narrow.NotMatch, narrow.Cancel, ErrNotActive
	}
	input, signal := narrow.Undo(s.input)
	if signal == narrow.Cancel {
		s.logger.Debug("hint %s: cancelled by undo", s.id)
		s.Finalize()
		return narrow.NotMatch, signal, nil
	}
	s.input = input
	return s.step(), signal, nil
}

// Disrupt ends the session without a jump. It is used for focus changes,
// viewport changes, explicit cancel and modal input dismissal.
func (s *Session) Disrupt(reason string) {
	if !s.Active() && len(s.layers) == 0 {
		return
	}
	s.logger.Debug("hint %s: disrupted: %s", s.id, reason)
	s.Finalize()
}

// Finalize clears every layer, releases it, and resets the session to
// inactive. It is idempotent.
func (s *Session) Finalize() {
	layers := s.layers
	s.layers = nil
	for _, l := range layers {
		l.Draw(nil)
		l.Release()
	}

	s.mode = ModeInactive
	s.id = ""
	s.groups = nil
	s.input = ""
	s.result = narrow.Result{}
}

// step classifies the input and either commits or redraws.
func (s *Session) step() narrow.Capability {
	s.result = narrow.Classify(s.labels(), s.input)

	c := s.result.Capability
	switch c {
	case narrow.CanNavigate:
		s.commit()
	default:
		s.draw()
	}
	return c
}

// commit moves the cursor to the single surviving target and finalizes.
func (s *Session) commit() {
	g, i, ok := s.result.Single()
	if !ok {
		return
	}
	group := s.groups[g]
	jump := Jump{
		SessionID: s.id,
		Mode:      s.mode,
		Editor:    group.Editor,
		Target:    group.Targets[i],
		Label:     group.Labels[i],
	}

	s.logger.Info("hint %s: jump to %s in %s (label %q)", s.id, jump.Target.Start, jump.Editor, jump.Label)
	if err := s.mover.MoveTo(jump.Editor, jump.Target); err != nil {
		s.logger.Warn("hint %s: cursor move failed: %v", s.id, err)
	}
	s.lastJump = &jump
	s.Finalize()
}

// draw pushes the surviving hints of every group to its layer.
func (s *Session) draw() {
	typed := utf8.RuneCountInString(s.input)
	for g, layer := range s.layers {
		var hints []Hint
		if g < len(s.result.Matches) {
			group := s.groups[g]
			hints = make([]Hint, 0, len(s.result.Matches[g]))
			for _, idx := range s.result.Matches[g] {
				hints = append(hints, Hint{
					Target: group.Targets[idx],
					Label:  group.Labels[idx],
					Typed:  typed,
				})
			}
		}
		layer.Draw(hints)
	}
}

// labels returns the per-group label lists.
func (s *Session) labels() [][]string {
	out := make([][]string, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Labels
	}
	return out
}
