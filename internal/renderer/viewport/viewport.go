// Package viewport provides viewport management for the renderer.
package viewport

import (
	"sync"
)

// ChangeFunc is called after the visible range changes.
type ChangeFunc func(top, bottom uint32)

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	mu sync.RWMutex

	// Position in buffer (first visible line)
	topLine uint32

	// Size in screen rows
	height int

	// Lines kept between the cursor and the edges when scrolling to it
	margin int

	// Buffer size limits
	maxLine uint32

	onChange ChangeFunc
}

// NewViewport creates a viewport with the given height.
// Height is clamped to a minimum of 1 to prevent underflow.
func NewViewport(height int) *Viewport {
	return &Viewport{
		height: max(height, 1),
	}
}

// OnChange registers fn to be called whenever the visible range moves or
// resizes. It is called without the viewport lock held.
func (v *Viewport) OnChange(fn ChangeFunc) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// BottomLine returns the last visible line.
func (v *Viewport) BottomLine() uint32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomLine()
}

// VisibleLines returns the first and last visible lines.
func (v *Viewport) VisibleLines() (top, bottom uint32) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.bottomLine()
}

// bottomLine returns the last visible line (internal, no lock).
func (v *Viewport) bottomLine() uint32 {
	bottom := v.topLine + uint32(v.height) - 1
	if v.maxLine > 0 && bottom > v.maxLine-1 {
		bottom = v.maxLine - 1
	}
	return max(bottom, v.topLine)
}

// SetMargin sets how many lines EnsureVisible keeps around a line.
func (v *Viewport) SetMargin(lines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.margin = max(lines, 0)
}

// SetMaxLine sets the buffer line count, clamping the top line.
func (v *Viewport) SetMaxLine(lines uint32) {
	v.update(func() {
		v.maxLine = lines
		v.topLine = v.clampTop(v.topLine)
	})
}

// Resize updates the viewport height.
func (v *Viewport) Resize(height int) {
	v.update(func() {
		v.height = max(height, 1)
		v.topLine = v.clampTop(v.topLine)
	})
}

// ScrollTo sets the first visible line.
func (v *Viewport) ScrollTo(line uint32) {
	v.update(func() {
		v.topLine = v.clampTop(line)
	})
}

// ScrollBy scrolls by delta lines. Negative values scroll up.
func (v *Viewport) ScrollBy(delta int) {
	v.update(func() {
		top := int64(v.topLine) + int64(delta)
		if top < 0 {
			top = 0
		}
		v.topLine = v.clampTop(uint32(top))
	})
}

// ScrollPage scrolls by one page, less one line of overlap.
func (v *Viewport) ScrollPage(down bool) {
	v.mu.RLock()
	page := max(v.height-1, 1)
	v.mu.RUnlock()
	if !down {
		page = -page
	}
	v.ScrollBy(page)
}

// EnsureVisible scrolls the minimum amount so that line is at least the
// margin away from either edge.
func (v *Viewport) EnsureVisible(line uint32) {
	v.update(func() {
		margin := uint32(min(v.margin, (v.height-1)/2))
		switch {
		case line < v.topLine+margin:
			if line < margin {
				v.topLine = 0
			} else {
				v.topLine = line - margin
			}
		case line+margin > v.topLine+uint32(v.height)-1:
			v.topLine = line + margin + 1 - uint32(v.height)
		}
		v.topLine = v.clampTop(v.topLine)
	})
}

// IsLineVisible returns true if line is on screen.
func (v *Viewport) IsLineVisible(line uint32) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return line >= v.topLine && line <= v.bottomLine()
}

// clampTop keeps the last page full when the buffer is longer than the
// viewport (must hold write lock).
func (v *Viewport) clampTop(top uint32) uint32 {
	if v.maxLine == 0 {
		return top
	}
	if v.maxLine <= uint32(v.height) {
		return 0
	}
	return min(top, v.maxLine-uint32(v.height))
}

// update applies fn under the lock and fires the change callback when the
// visible range differs afterwards.
func (v *Viewport) update(fn func()) {
	v.mu.Lock()
	oldTop, oldBottom := v.topLine, v.bottomLine()
	oldHeight := v.height
	fn()
	top, bottom := v.topLine, v.bottomLine()
	changed := top != oldTop || bottom != oldBottom || v.height != oldHeight
	cb := v.onChange
	v.mu.Unlock()

	if changed && cb != nil {
		cb(top, bottom)
	}
}
