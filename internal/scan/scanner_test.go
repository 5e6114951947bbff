package scan

import (
	"errors"
	"testing"

	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/hint"
)

type testView struct {
	id          string
	buf         *buffer.Buffer
	top, bottom uint32
}

func (v *testView) ID() string                     { return v.id }
func (v *testView) Buffer() *buffer.Buffer         { return v.buf }
func (v *testView) VisibleLines() (uint32, uint32) { return v.top, v.bottom }

type testSource struct {
	active  View
	visible []View
}

func (s *testSource) Active() View    { return s.active }
func (s *testSource) Visible() []View { return s.visible }

func newView(id, text string, top, bottom uint32) *testView {
	return &testView{id: id, buf: buffer.NewBufferFromString(text), top: top, bottom: bottom}
}

func points(c hint.Candidates) []buffer.Point {
	out := make([]buffer.Point, len(c.Targets))
	for i, t := range c.Targets {
		out[i] = t.Start
	}
	return out
}

func TestRange(t *testing.T) {
	text := "0\n1\n2\n3\n4\n5"
	tests := []struct {
		name        string
		top, bottom uint32
		first, last uint32
	}{
		{"middle", 2, 3, 1, 4},
		{"top edge", 0, 1, 0, 2},
		{"bottom edge", 4, 5, 3, 5},
		{"past end", 4, 9, 3, 5},
		{"swapped", 3, 2, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := Range(newView("v", text, tt.top, tt.bottom))
			if first != tt.first || last != tt.last {
				t.Errorf("Range() = %d..%d, want %d..%d", first, last, tt.first, tt.last)
			}
		})
	}
}

func TestScanWords(t *testing.T) {
	v := newView("main", "skip\nhello world\n  foo_bar, baz\noutside\nfar", 1, 1)
	s := New(&testSource{active: v})

	got, err := s.Scan(hint.ModeWordHint, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Editor != "main" {
		t.Fatalf("Scan() = %+v", got)
	}
	want := []buffer.Point{
		{Line: 0, Column: 0},
		{Line: 1, Column: 0}, {Line: 1, Column: 6},
		{Line: 2, Column: 2}, {Line: 2, Column: 11},
	}
	gotPts := points(got[0])
	if len(gotPts) != len(want) {
		t.Fatalf("targets = %v, want %v", gotPts, want)
	}
	for i := range want {
		if gotPts[i] != want[i] {
			t.Errorf("target %d = %v, want %v", i, gotPts[i], want[i])
		}
	}
	for _, tg := range got[0].Targets {
		if tg.IsRange() {
			t.Errorf("word targets must be positions, got %v", tg)
		}
	}
}

func TestScanLines(t *testing.T) {
	v := newView("main", "a\n    indented\n\n   \nlast", 0, 4)
	s := New(&testSource{active: v})

	got, err := s.Scan(hint.ModeLineHint, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []buffer.Point{
		{Line: 0, Column: 0},
		{Line: 1, Column: 4},
		{Line: 2, Column: 0},
		{Line: 3, Column: 3},
		{Line: 4, Column: 0},
	}
	gotPts := points(got[0])
	if len(gotPts) != len(want) {
		t.Fatalf("targets = %v, want %v", gotPts, want)
	}
	for i := range want {
		if gotPts[i] != want[i] {
			t.Errorf("line %d target = %v, want %v", i, gotPts[i], want[i])
		}
	}
}

func TestScanSearch(t *testing.T) {
	v := newView("main", "Foo.bar foo\nfoo.x", 0, 1)
	s := New(&testSource{active: v})

	got, err := s.Scan(hint.ModeSearchHint, "foo.")
	if err != nil {
		t.Fatal(err)
	}
	c := got[0]
	if len(c.Targets) != 2 {
		t.Fatalf("targets = %+v, want 2 literal matches", c.Targets)
	}
	first := c.Targets[0]
	if first.Start != (buffer.Point{Line: 0, Column: 0}) || first.End != (buffer.Point{Line: 0, Column: 4}) {
		t.Errorf("first range = %v..%v", first.Start, first.End)
	}
	if !first.IsRange() {
		t.Error("search targets are ranges")
	}
	if string(c.Reserved) != "bx" {
		t.Errorf("Reserved = %q, want \"bx\"", string(c.Reserved))
	}
}

func TestScanSearchReservedLowercase(t *testing.T) {
	v := newView("main", "abC abc ab", 0, 0)
	got, _ := New(&testSource{active: v}).Scan(hint.ModeSearchHint, "AB")
	if len(got[0].Targets) != 3 {
		t.Fatalf("targets = %d, want 3", len(got[0].Targets))
	}
	if string(got[0].Reserved) != "c" {
		t.Errorf("Reserved = %q, want \"c\"", string(got[0].Reserved))
	}
}

func TestScanEmptyQuery(t *testing.T) {
	v := newView("main", "anything", 0, 0)
	got, err := New(&testSource{active: v}).Scan(hint.ModeSearchHint, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].Targets) != 0 {
		t.Errorf("empty query should yield an empty group, got %+v", got)
	}
}

func TestScanScope(t *testing.T) {
	a := newView("a", "one two", 0, 0)
	b := newView("b", "three", 0, 0)
	src := &testSource{active: b, visible: []View{a, b}}

	active, _ := New(src).Scan(hint.ModeWordHint, "")
	if len(active) != 1 || active[0].Editor != "b" {
		t.Errorf("active scope = %+v", active)
	}

	visible, _ := New(src, WithScope(ScopeVisible)).Scan(hint.ModeWordHint, "")
	if len(visible) != 2 || visible[0].Editor != "a" || len(visible[0].Targets) != 2 {
		t.Errorf("visible scope = %+v", visible)
	}

	none, _ := New(&testSource{}).Scan(hint.ModeWordHint, "")
	if len(none) != 0 {
		t.Errorf("no active view should scan nothing, got %+v", none)
	}
}

func TestScanInvalidMode(t *testing.T) {
	v := newView("main", "x", 0, 0)
	_, err := New(&testSource{active: v}).Scan(hint.ModeInactive, "")
	if !errors.Is(err, hint.ErrInvalidMode) {
		t.Errorf("Scan(inactive) error = %v", err)
	}
}

func TestCustomMatcher(t *testing.T) {
	v := newView("main", "abc", 0, 0)
	m := MatcherFunc(func(line string) [][2]int {
		return [][2]int{{1, 1}, {2, 2}}
	})
	got, _ := New(&testSource{active: v}, WithWordMatcher(m)).Scan(hint.ModeWordHint, "")
	pts := points(got[0])
	if len(pts) != 2 || pts[0].Column != 1 || pts[1].Column != 2 {
		t.Errorf("targets = %v", pts)
	}
}

func TestRegexpMatcher(t *testing.T) {
	if _, err := NewRegexpMatcher("("); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("NewRegexpMatcher(\"(\") error = %v", err)
	}
	if _, err := NewRegexpMatcher(""); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("NewRegexpMatcher(\"\") error = %v", err)
	}

	m := MustRegexpMatcher(`x(y)`)
	got := m.Match("axy xy")
	if len(got) != 2 || got[0] != [2]int{2, 3} || got[1] != [2]int{5, 6} {
		t.Errorf("Match() = %v", got)
	}
	if m.String() != "x(y)" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeActive, false},
		{"active", ScopeActive, false},
		{"visible", ScopeVisible, false},
		{"all", ScopeActive, true},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScope(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseScope(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() != map[Scope]string{ScopeActive: "active", ScopeVisible: "visible"}[got] {
			t.Errorf("String() = %q", got.String())
		}
	}
}
