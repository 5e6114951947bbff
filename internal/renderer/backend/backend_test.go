package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hintjump/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(20, 5)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(3, 2, cell)
	if got := b.GetCell(3, 2); !got.Equals(cell) {
		t.Errorf("GetCell() = %+v, want %+v", got, cell)
	}

	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); !got.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return an empty cell")
	}
}

func TestNullBackendFillAndRow(t *testing.T) {
	b := NewNullBackend(6, 3)
	b.Fill(core.RectFromSize(1, 2, 5, 10), core.NewStyledCell('.', core.DefaultStyle()))

	if got := b.Row(0); got != "      " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := b.Row(1); got != "  ...." {
		t.Errorf("Row(1) = %q", got)
	}
	b.Clear()
	if got := b.Row(1); got != "      " {
		t.Errorf("Row(1) after Clear = %q", got)
	}
	if b.Row(9) != "" {
		t.Error("Row out of range should be empty")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(10, 4)
	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	b.Resize(12, 5)

	if ev := b.PollEvent(); ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("first event = %+v", ev)
	}
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 12 || ev.Height != 5 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := b.Size(); w != 12 || h != 5 {
		t.Errorf("Size() = %d,%d", w, h)
	}
}

func TestNullBackendCursorAndCounters(t *testing.T) {
	b := NewNullBackend(10, 4)
	b.ShowCursor(2, 3)
	if x, y, vis := b.CursorPosition(); x != 2 || y != 3 || !vis {
		t.Errorf("CursorPosition() = %d,%d,%v", x, y, vis)
	}
	b.HideCursor()
	if _, _, vis := b.CursorPosition(); vis {
		t.Error("cursor should be hidden")
	}
	b.Show()
	b.Beep()
	if b.ShowCount() != 1 || b.BeepCount() != 1 {
		t.Errorf("counters = %d/%d", b.ShowCount(), b.BeepCount())
	}
}

func TestCtrlKey(t *testing.T) {
	if CtrlKey('j') != KeyCtrlJ || CtrlKey('J') != KeyCtrlJ {
		t.Error("CtrlKey('j') should be KeyCtrlJ")
	}
	if CtrlKey('1') != KeyNone {
		t.Error("CtrlKey('1') should be KeyNone")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyRune, KeyRune},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlJ, KeyCtrlJ},
		{tcell.KeyCtrlZ, KeyCtrlZ},
		{tcell.KeyF5, KeyF5},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, k := range []Key{KeyEscape, KeyUp, KeyCtrlJ, KeyF12} {
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("round trip %v = %v", k, got)
		}
	}
	if convertToTcellKey(KeyBackspace) != tcell.KeyBackspace2 {
		t.Error("backspace should map to KeyBackspace2")
	}
}

func TestConvertStyleRoundTrip(t *testing.T) {
	styles := []core.Style{
		core.DefaultStyle(),
		core.NewStyle(core.ColorFromRGB(10, 20, 30)).WithBackground(core.ColorFromIndex(4)).Bold(),
		core.DefaultStyle().Dim().Reverse(),
	}
	for _, s := range styles {
		if got := convertTcellStyle(convertStyle(s)); !got.Equals(s) {
			t.Errorf("round trip %+v = %+v", s, got)
		}
	}
}

func TestTerminalSimulation(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(10, 3)

	style := core.NewStyle(core.ColorYellow).Bold()
	term.SetCell(1, 1, core.NewStyledCell('h', style))
	got := term.GetCell(1, 1)
	if got.Rune != 'h' || !got.Style.Foreground.Equals(core.ColorYellow) || !got.Style.Attributes.Has(core.AttrBold) {
		t.Errorf("GetCell() = %+v", got)
	}

	term.PostEvent(Event{Type: EventInterrupt, Data: "reload"})
	ev := term.PollEvent()
	for ev.Type == EventResize || ev.Type == EventNone {
		ev = term.PollEvent()
	}
	if ev.Type != EventInterrupt || ev.Data != "reload" {
		t.Errorf("PollEvent() = %+v, want interrupt", ev)
	}
}
