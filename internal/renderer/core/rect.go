package core

// ScreenRect is a rectangle in screen cells. Bottom and Right are exclusive.
type ScreenRect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// RectFromSize creates a rectangle from its origin and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the number of columns.
func (r ScreenRect) Width() int {
	return max(r.Right-r.Left, 0)
}

// Height returns the number of rows.
func (r ScreenRect) Height() int {
	return max(r.Bottom-r.Top, 0)
}

// IsEmpty reports whether the rectangle covers no cells.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains reports whether the cell at (row, col) is inside r.
func (r ScreenRect) Contains(row, col int) bool {
	return row >= r.Top && row < r.Bottom && col >= r.Left && col < r.Right
}
