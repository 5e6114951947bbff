package hint

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/hint/label"
	"github.com/dshills/hintjump/internal/hint/narrow"
)

type fakeScanner struct {
	found []Candidates
	err   error
	calls int
	query string
}

func (f *fakeScanner) Scan(mode Mode, query string) ([]Candidates, error) {
	f.calls++
	f.query = query
	return f.found, f.err
}

type recordingLayer struct {
	editor   string
	draws    [][]Hint
	released int
}

func (l *recordingLayer) Draw(hints []Hint) {
	l.draws = append(l.draws, append([]Hint(nil), hints...))
}

func (l *recordingLayer) Release() {
	l.released++
}

func (l *recordingLayer) last() []Hint {
	if len(l.draws) == 0 {
		return nil
	}
	return l.draws[len(l.draws)-1]
}

type recordingRenderer struct {
	layers []*recordingLayer
	failAt int // 1-based acquire call that fails; 0 never fails
}

func (r *recordingRenderer) Acquire(editor string, mode Mode) (Layer, error) {
	if r.failAt > 0 && len(r.layers)+1 == r.failAt {
		return nil, errors.New("no room")
	}
	l := &recordingLayer{editor: editor}
	r.layers = append(r.layers, l)
	return l, nil
}

type moveCall struct {
	editor string
	target Target
}

type fakeMover struct {
	moves []moveCall
	err   error
}

func (m *fakeMover) MoveTo(editor string, target Target) error {
	m.moves = append(m.moves, moveCall{editor: editor, target: target})
	return m.err
}

type capturingLogger struct {
	lines []string
}

func (l *capturingLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }
func (l *capturingLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args) }
func (l *capturingLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args) }

func (l *capturingLogger) add(level, msg string, args []any) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(msg, args...))
}

func (l *capturingLogger) contains(level, sub string) bool {
	for _, line := range l.lines {
		if strings.HasPrefix(line, level) && strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

func pos(line, col uint32) Target {
	return PositionTarget(buffer.Point{Line: line, Column: col})
}

func targets(n int) []Target {
	out := make([]Target, n)
	for i := range out {
		out[i] = pos(uint32(i), 0)
	}
	return out
}

type harness struct {
	scanner  *fakeScanner
	renderer *recordingRenderer
	mover    *fakeMover
	logger   *capturingLogger
	session  *Session
}

func newHarness(found []Candidates, settings Settings) *harness {
	h := &harness{
		scanner:  &fakeScanner{found: found},
		renderer: &recordingRenderer{},
		mover:    &fakeMover{},
		logger:   &capturingLogger{},
	}
	ids := 0
	h.session = NewSession(h.scanner, h.renderer, h.mover,
		WithLogger(h.logger),
		WithSettings(settings),
		WithIDFunc(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}),
	)
	return h
}

func fixedSettings(alphabet string, n int) Settings {
	return Settings{Alphabet: []rune(alphabet), Policy: label.FixedPolicy(n)}
}

func variableSettings(alphabet string) Settings {
	return Settings{Alphabet: []rune(alphabet), Policy: label.VariablePolicy()}
}

func labelsOf(hints []Hint) []string {
	out := make([]string, len(hints))
	for i, h := range hints {
		out[i] = h.Label
	}
	return out
}

func TestActivateDrawsAllLabels(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(3)}}, variableSettings("asdf"))

	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if h.session.Mode() != ModeWordHint {
		t.Errorf("Mode() = %v, want word", h.session.Mode())
	}
	if h.session.ID() != "id-1" {
		t.Errorf("ID() = %q", h.session.ID())
	}
	if len(h.renderer.layers) != 1 {
		t.Fatalf("acquired %d layers, want 1", len(h.renderer.layers))
	}
	got := labelsOf(h.renderer.layers[0].last())
	want := []string{"a", "s", "d"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("drawn labels = %v, want %v", got, want)
	}
	if len(h.mover.moves) != 0 {
		t.Error("activation must not move the cursor")
	}
}

func TestUnlabeledTargetsAreUnreachable(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(5)}}, fixedSettings("asdf", 1))

	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	groups := h.session.Groups()
	if len(groups[0].Labels) != 4 {
		t.Fatalf("labels = %v, want 4", groups[0].Labels)
	}
	if !h.logger.contains("WARN", "1 of 5 targets unlabeled") {
		t.Errorf("expected shortfall warning, got %v", h.logger.lines)
	}
	if n := len(h.renderer.layers[0].last()); n != 4 {
		t.Errorf("drew %d hints, want 4", n)
	}

	// Typing a rune outside every label matches nothing.
	c, err := h.session.Input('g')
	if err != nil {
		t.Fatal(err)
	}
	if c != narrow.NotMatch {
		t.Errorf("Input('g') = %v, want not-match", c)
	}
	if n := len(h.renderer.layers[0].last()); n != 0 {
		t.Errorf("not-match should draw nothing, drew %d", n)
	}
	if !h.session.Active() {
		t.Error("not-match keeps the session active")
	}

	if _, _, err := h.session.Backspace(); err != nil {
		t.Fatal(err)
	}
	c, _ = h.session.Input('f')
	if c != narrow.CanNavigate {
		t.Fatalf("Input('f') = %v, want can-navigate", c)
	}
	if len(h.mover.moves) != 1 || h.mover.moves[0].target != pos(3, 0) {
		t.Errorf("moves = %v, want target on line 3", h.mover.moves)
	}
}

func TestNarrowAndCommit(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(5)}}, variableSettings("asdf"))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	// Variable labels for five targets: s d f aa as.
	c, _ := h.session.Input('A')
	if c != narrow.Narrowed {
		t.Fatalf("Input('A') = %v, want narrowed", c)
	}
	hints := h.renderer.layers[0].last()
	if got := strings.Join(labelsOf(hints), ","); got != "aa,as" {
		t.Errorf("narrowed labels = %s", got)
	}
	for _, hint := range hints {
		if hint.Typed != 1 {
			t.Errorf("hint %q Typed = %d, want 1", hint.Label, hint.Typed)
		}
	}

	c, _ = h.session.Input('s')
	if c != narrow.CanNavigate {
		t.Fatalf("Input('s') = %v, want can-navigate", c)
	}
	if h.session.Active() {
		t.Error("session should be inactive after commit")
	}
	jump, ok := h.session.LastJump()
	if !ok {
		t.Fatal("LastJump() missing")
	}
	if jump.Label != "as" || jump.Target != pos(4, 0) || jump.SessionID != "id-1" || jump.Editor != "main" {
		t.Errorf("LastJump() = %+v", jump)
	}
	layer := h.renderer.layers[0]
	if layer.released != 1 {
		t.Errorf("released %d times, want 1", layer.released)
	}
	if len(layer.last()) != 0 {
		t.Error("layer should be cleared before release")
	}
}

func TestMultipleEditors(t *testing.T) {
	found := []Candidates{
		{Editor: "left", Targets: targets(2)},
		{Editor: "right", Targets: targets(2)},
	}
	h := newHarness(found, fixedSettings("ab", 2))
	if err := h.session.Activate(ModeLineHint, ""); err != nil {
		t.Fatal(err)
	}
	groups := h.session.Groups()
	if strings.Join(groups[0].Labels, ",") != "aa,ab" || strings.Join(groups[1].Labels, ",") != "ba,bb" {
		t.Fatalf("groups = %+v", groups)
	}
	if h.renderer.layers[0].editor != "left" || h.renderer.layers[1].editor != "right" {
		t.Error("layers acquired for wrong editors")
	}

	h.session.Input('b')
	if n := len(h.renderer.layers[0].last()); n != 0 {
		t.Errorf("left layer shows %d hints after 'b'", n)
	}
	if n := len(h.renderer.layers[1].last()); n != 2 {
		t.Errorf("right layer shows %d hints after 'b'", n)
	}

	h.session.Input('a')
	if len(h.mover.moves) != 1 || h.mover.moves[0].editor != "right" {
		t.Errorf("moves = %+v, want one move in right", h.mover.moves)
	}
	for i, l := range h.renderer.layers {
		if l.released != 1 {
			t.Errorf("layer %d released %d times", i, l.released)
		}
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(3)}}, DefaultSettings())
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	h.session.Finalize()
	h.session.Finalize()
	h.session.Disrupt("focus")

	if got := h.renderer.layers[0].released; got != 1 {
		t.Errorf("released %d times, want 1", got)
	}
	if h.session.Mode() != ModeInactive || h.session.ID() != "" {
		t.Error("session should be inactive")
	}
	if _, err := h.session.Input('a'); !errors.Is(err, ErrNotActive) {
		t.Errorf("Input() after finalize error = %v, want ErrNotActive", err)
	}
	if _, _, err := h.session.Backspace(); !errors.Is(err, ErrNotActive) {
		t.Errorf("Backspace() after finalize error = %v", err)
	}
}

func TestReactivateReleasesPrevious(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(3)}}, DefaultSettings())
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	if err := h.session.Activate(ModeLineHint, ""); err != nil {
		t.Fatal(err)
	}
	if len(h.renderer.layers) != 2 {
		t.Fatalf("acquired %d layers, want 2", len(h.renderer.layers))
	}
	if h.renderer.layers[0].released != 1 || h.renderer.layers[1].released != 0 {
		t.Error("only the first activation's layer should be released")
	}
	if h.session.ID() != "id-2" {
		t.Errorf("ID() = %q, want id-2", h.session.ID())
	}
}

func TestConfigErrorAborts(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
	}{
		{"empty alphabet", variableSettings("")},
		{"duplicate rune", variableSettings("aba")},
		{"zero length", fixedSettings("asdf", 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness([]Candidates{{Editor: "main", Targets: targets(3)}}, tt.settings)
			err := h.session.Activate(ModeWordHint, "")
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("Activate() error = %v, want ErrConfig", err)
			}
			var ae *ActivationError
			if !errors.As(err, &ae) || ae.Op != "settings" {
				t.Errorf("error = %#v, want settings ActivationError", err)
			}
			if h.session.Active() {
				t.Error("session must stay inactive")
			}
			if h.scanner.calls != 0 || len(h.renderer.layers) != 0 {
				t.Error("no scan or render expected on config error")
			}
		})
	}
}

func TestScanErrorAborts(t *testing.T) {
	h := newHarness(nil, DefaultSettings())
	h.scanner.err = errors.New("boom")
	err := h.session.Activate(ModeWordHint, "")
	var ae *ActivationError
	if !errors.As(err, &ae) || ae.Op != "scan" {
		t.Fatalf("Activate() error = %v", err)
	}
	if h.session.Active() {
		t.Error("session must stay inactive")
	}
}

func TestRenderFailureReleasesAcquired(t *testing.T) {
	found := []Candidates{
		{Editor: "a", Targets: targets(1)},
		{Editor: "b", Targets: targets(1)},
		{Editor: "c", Targets: targets(1)},
	}
	h := newHarness(found, DefaultSettings())
	h.renderer.failAt = 3

	err := h.session.Activate(ModeWordHint, "")
	var ae *ActivationError
	if !errors.As(err, &ae) || ae.Op != "render" {
		t.Fatalf("Activate() error = %v", err)
	}
	if len(h.renderer.layers) != 2 {
		t.Fatalf("acquired %d layers, want 2", len(h.renderer.layers))
	}
	for i, l := range h.renderer.layers {
		if l.released != 1 {
			t.Errorf("layer %d released %d times, want 1", i, l.released)
		}
	}
	if h.session.Active() {
		t.Error("session must be inactive")
	}
}

func TestInvalidMode(t *testing.T) {
	h := newHarness(nil, DefaultSettings())
	if err := h.session.Activate(ModeInactive, ""); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Activate(inactive) error = %v", err)
	}
}

func TestZeroTargets(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main"}}, DefaultSettings())
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	if !h.session.Active() {
		t.Fatal("session should be active with no targets")
	}
	if h.session.Result().Capability != narrow.NotMatch {
		t.Errorf("capability = %v, want not-match", h.session.Result().Capability)
	}
	if len(h.renderer.layers) != 1 {
		t.Errorf("a layer is acquired even for an empty group")
	}
}

func TestSearchExcludesReservedRunes(t *testing.T) {
	start := buffer.Point{Line: 0, Column: 0}
	end := buffer.Point{Line: 0, Column: 3}
	found := []Candidates{{
		Editor:   "main",
		Targets:  []Target{RangeTarget(start, end), RangeTarget(buffer.Point{Line: 1}, buffer.Point{Line: 1, Column: 3})},
		Reserved: []rune{'S', 'd'},
	}}
	h := newHarness(found, fixedSettings("asdf", 1))

	if err := h.session.Activate(ModeSearchHint, "foo"); err != nil {
		t.Fatal(err)
	}
	if h.scanner.query != "foo" {
		t.Errorf("scanner query = %q", h.scanner.query)
	}
	got := strings.Join(h.session.Groups()[0].Labels, ",")
	if got != "a,f" {
		t.Fatalf("labels = %s, want a,f", got)
	}

	h.session.Input('a')
	if len(h.mover.moves) != 1 || h.mover.moves[0].target != RangeTarget(start, end) {
		t.Errorf("moves = %+v, want the first range", h.mover.moves)
	}
}

func TestReservedIgnoredOutsideSearch(t *testing.T) {
	found := []Candidates{{Editor: "main", Targets: targets(2), Reserved: []rune{'a'}}}
	h := newHarness(found, fixedSettings("as", 1))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(h.session.Groups()[0].Labels, ","); got != "a,s" {
		t.Errorf("labels = %s, want a,s", got)
	}
}

func TestBackspace(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(5)}}, variableSettings("asdf"))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	h.session.Input('a')
	c, signal, err := h.session.Backspace()
	if err != nil {
		t.Fatal(err)
	}
	if c != narrow.Narrowed || signal != narrow.NarrowAgain {
		t.Errorf("Backspace() = %v, %v, want narrowed, narrow-again", c, signal)
	}
	if h.session.InputText() != "" || !h.session.Active() {
		t.Fatalf("after one backspace input=%q active=%v", h.session.InputText(), h.session.Active())
	}
	if n := len(h.renderer.layers[0].last()); n != 5 {
		t.Errorf("all hints should be redrawn, got %d", n)
	}

	if _, signal, err = h.session.Backspace(); err != nil {
		t.Fatal(err)
	}
	if signal != narrow.Cancel {
		t.Errorf("signal = %v, want cancel", signal)
	}
	if h.session.Active() {
		t.Error("backspace on empty input cancels")
	}
	if h.renderer.layers[0].released != 1 {
		t.Error("layer should be released on cancel")
	}
	if len(h.mover.moves) != 0 {
		t.Error("cancel must not move the cursor")
	}
}

func TestBackspaceToSingleTargetCommits(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(1)}}, variableSettings("asdf"))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	if c, _ := h.session.Input('x'); c != narrow.NotMatch {
		t.Fatalf("Input('x') = %v", c)
	}
	c, signal, err := h.session.Backspace()
	if err != nil {
		t.Fatal(err)
	}
	if c != narrow.CanNavigate || signal != narrow.NarrowAgain {
		t.Errorf("Backspace() = %v, %v, want can-navigate, narrow-again", c, signal)
	}
	if _, ok := h.session.LastJump(); !ok {
		t.Error("LastJump should report the commit")
	}
	if len(h.mover.moves) != 1 {
		t.Errorf("undo to a single match should commit, moves = %v", h.mover.moves)
	}
}

func TestSetInput(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(5)}}, variableSettings("asdf"))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	c, err := h.session.SetInput("a")
	if err != nil || c != narrow.Narrowed {
		t.Fatalf("SetInput(a) = %v, %v", c, err)
	}
	c, _ = h.session.SetInput("zz")
	if c != narrow.NotMatch {
		t.Errorf("SetInput(zz) = %v", c)
	}
	c, _ = h.session.SetInput("AA")
	if c != narrow.CanNavigate {
		t.Errorf("SetInput(AA) = %v", c)
	}
	if jump, _ := h.session.LastJump(); jump.Label != "aa" {
		t.Errorf("jump label = %q", jump.Label)
	}
}

func TestDisrupt(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(3)}}, DefaultSettings())
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	h.session.Disrupt("scroll")
	if h.session.Active() {
		t.Error("disrupt ends the session")
	}
	if !h.logger.contains("DEBUG", "disrupted: scroll") {
		t.Errorf("log lines = %v", h.logger.lines)
	}
	if len(h.mover.moves) != 0 {
		t.Error("disrupt must not jump")
	}
}

func TestMoverErrorStillFinalizes(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(2)}}, fixedSettings("as", 1))
	h.mover.err = errors.New("gone")
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	h.session.Input('s')
	if h.session.Active() {
		t.Error("session should finalize after a failed move")
	}
	if !h.logger.contains("WARN", "cursor move failed") {
		t.Errorf("log lines = %v", h.logger.lines)
	}
	if h.renderer.layers[0].released != 1 {
		t.Error("layer not released")
	}
}

func TestSettingsTakeEffectOnNextActivation(t *testing.T) {
	h := newHarness([]Candidates{{Editor: "main", Targets: targets(2)}}, fixedSettings("as", 1))
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	h.session.SetSettings(fixedSettings("jk", 2))
	if got := strings.Join(h.session.Groups()[0].Labels, ","); got != "a,s" {
		t.Errorf("active labels changed to %s", got)
	}
	if err := h.session.Activate(ModeWordHint, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(h.session.Groups()[0].Labels, ","); got != "jj,jk" {
		t.Errorf("labels = %s, want jj,jk", got)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeInactive, "inactive"},
		{ModeWordHint, "word"},
		{ModeLineHint, "line"},
		{ModeSearchHint, "search"},
		{Mode(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
