package cursor

import (
	"fmt"

	"github.com/dshills/hintjump/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() ByteOffset {
	return s.End() - s.Start()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() ByteOffset {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() ByteOffset {
	return max(s.Anchor, s.Head)
}

// Cursor returns the head position.
func (s Selection) Cursor() ByteOffset {
	return s.Head
}

// Contains returns true if the given offset is within the selection.
// For empty selections (cursors), this always returns false.
func (s Selection) Contains(offset ByteOffset) bool {
	return offset >= s.Start() && offset < s.End()
}

// Clamp returns a selection clamped to the valid range [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	return Selection{
		Anchor: max(0, min(s.Anchor, maxOffset)),
		Head:   max(0, min(s.Head, maxOffset)),
	}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	return fmt.Sprintf("Selection(%d→%d)", s.Anchor, s.Head)
}

// Jump returns the selection a jump to [start, end) in buf produces.
// Equal points give a collapsed cursor at start.
func Jump(buf *buffer.Buffer, start, end buffer.Point) Selection {
	a := buf.PointToOffset(start)
	if start == end {
		return NewCursorSelection(a)
	}
	return NewSelection(a, buf.PointToOffset(end))
}
