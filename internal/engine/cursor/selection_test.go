package cursor

import (
	"testing"

	"github.com/dshills/hintjump/internal/engine/buffer"
)

func TestSelectionBasics(t *testing.T) {
	s := NewSelection(10, 4)
	if s.Start() != 4 || s.End() != 10 {
		t.Errorf("Start/End = %d/%d, want 4/10", s.Start(), s.End())
	}
	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}
	if s.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", s.Cursor())
	}
	if !s.Contains(4) || s.Contains(10) {
		t.Error("Contains should be half-open")
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() should be false")
	}

	c := NewCursorSelection(3)
	if !c.IsEmpty() || c.Contains(3) {
		t.Error("cursor selection should be empty and contain nothing")
	}
	if c.String() != "Cursor(3)" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestSelectionClamp(t *testing.T) {
	s := NewSelection(-3, 50).Clamp(20)
	if s.Anchor != 0 || s.Head != 20 {
		t.Errorf("Clamp() = %v", s)
	}
}

func TestJump(t *testing.T) {
	buf := buffer.NewBufferFromString("alpha beta\ngamma delta")

	sel := Jump(buf, buffer.Point{Line: 1, Column: 6}, buffer.Point{Line: 1, Column: 6})
	if !sel.IsEmpty() || sel.Head != 17 {
		t.Errorf("Jump(position) = %v, want Cursor(17)", sel)
	}

	sel = Jump(buf, buffer.Point{Line: 0, Column: 6}, buffer.Point{Line: 0, Column: 10})
	if sel.Anchor != 6 || sel.Head != 10 {
		t.Errorf("Jump(range) = %v, want Selection(6→10)", sel)
	}
}
