package key

import (
	"errors"
	"testing"

	"github.com/dshills/hintjump/internal/renderer/backend"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"F", NewRuneEvent('F', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"esc", NewSpecialEvent(KeyEscape, ModNone)},
		{"Space", NewRuneEvent(' ', ModNone)},
		{"Ctrl+J", NewRuneEvent('j', ModCtrl)},
		{"ctrl+shift+up", NewSpecialEvent(KeyUp, ModCtrl|ModShift)},
		{"Alt+w", NewRuneEvent('w', ModAlt)},
		{"Ctrl+Plus", NewRuneEvent('+', ModCtrl)},
		{"+", NewRuneEvent('+', ModNone)},
		{"<", NewRuneEvent('<', ModNone)},
		{"<C-j>", NewRuneEvent('j', ModCtrl)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<A-F4>", NewSpecialEvent(KeyF4, ModAlt)},
		{"  Tab  ", NewSpecialEvent(KeyTab, ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+J", ErrInvalidSpec},
		{"Ctrl+", ErrInvalidSpec},
		{"Banana", ErrInvalidSpec},
		{"<X-j>", ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse of an invalid spec should panic")
		}
	}()
	MustParse("Nope+x")
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('j', ModCtrl), "Ctrl+j"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('-', ModNone), "-"},
		{NewRuneEvent('-', ModCtrl), "Ctrl+Minus"},
		{NewSpecialEvent(KeyUp, ModCtrl|ModShift), "Ctrl+Shift+Up"},
		{NewSpecialEvent(KeyEscape, ModNone), "Escape"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.ev, got, tt.want)
		}
		parsed, err := Parse(tt.ev.String())
		if err != nil || !parsed.Equals(tt.ev) {
			t.Errorf("Parse(%q) = %#v, %v; want %#v", tt.ev.String(), parsed, err, tt.ev)
		}
	}
}

func TestNormalizeSpec(t *testing.T) {
	got, err := NormalizeSpec("<C-J>")
	if err != nil || got != "Ctrl+j" {
		t.Errorf("NormalizeSpec(<C-J>) = %q, %v", got, err)
	}
}

func TestEventPredicates(t *testing.T) {
	tests := []struct {
		name     string
		ev       Event
		char     bool
		modified bool
	}{
		{"plain", NewRuneEvent('a', ModNone), true, false},
		{"shifted", NewRuneEvent('A', ModShift), true, false},
		{"ctrl", NewRuneEvent('a', ModCtrl), false, true},
		{"special", NewSpecialEvent(KeyEnter, ModNone), false, false},
		{"shift special", NewSpecialEvent(KeyTab, ModShift), false, true},
		{"control rune", NewRuneEvent('\x01', ModNone), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.IsChar(); got != tt.char {
				t.Errorf("IsChar() = %v, want %v", got, tt.char)
			}
			if got := tt.ev.IsModified(); got != tt.modified {
				t.Errorf("IsModified() = %v, want %v", got, tt.modified)
			}
		})
	}
}

func TestFromBackend(t *testing.T) {
	tests := []struct {
		name string
		ev   backend.Event
		spec string
	}{
		{"rune", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'f'}, "f"},
		{"shifted rune", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'F', Mod: backend.ModShift}, "F"},
		{"alt rune", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'w', Mod: backend.ModAlt}, "Alt+w"},
		{"ctrl letter", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlJ, Mod: backend.ModCtrl}, "Ctrl+J"},
		{"ctrl space", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlSpace}, "Ctrl+Space"},
		{"escape", backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}, "Escape"},
		{"page down", backend.Event{Type: backend.EventKey, Key: backend.KeyPageDown}, "PageDown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromBackend(tt.ev)
			if !ok {
				t.Fatal("FromBackend() ok = false")
			}
			if !got.Matches(tt.spec) {
				t.Errorf("FromBackend() = %#v, does not match %q", got, tt.spec)
			}
		})
	}

	if _, ok := FromBackend(backend.Event{Type: backend.EventResize}); ok {
		t.Error("resize events are not keys")
	}
	if _, ok := FromBackend(backend.Event{Type: backend.EventKey, Key: backend.KeyNone}); ok {
		t.Error("KeyNone should not convert")
	}
}

func TestModifier(t *testing.T) {
	m := ModCtrl.With(ModAlt)
	if !m.Has(ModAlt) || m.Has(ModShift) {
		t.Errorf("Has() wrong for %v", m)
	}
	if got := m.String(); got != "Ctrl+Alt" {
		t.Errorf("String() = %q", got)
	}
	if got := m.Without(ModCtrl); got != ModAlt {
		t.Errorf("Without(ModCtrl) = %v", got)
	}
	if ModifierFromName(" Cmd ") != ModMeta || ModifierFromName("hyper") != ModNone {
		t.Error("ModifierFromName mismatch")
	}
}

func TestKeyString(t *testing.T) {
	if KeyPageUp.String() != "PageUp" || Key(999).String() != "Key(999)" {
		t.Error("Key.String mismatch")
	}
	if !KeyHome.IsNavigationKey() || KeyF1.IsNavigationKey() {
		t.Error("IsNavigationKey mismatch")
	}
	if KeyRune.IsSpecial() || !KeyTab.IsSpecial() {
		t.Error("IsSpecial mismatch")
	}
}
