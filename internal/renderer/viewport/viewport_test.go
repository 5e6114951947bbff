package viewport

import "testing"

func TestNewViewport(t *testing.T) {
	v := NewViewport(0)
	if v.Height() != 1 {
		t.Errorf("Height() = %d, want 1", v.Height())
	}
	v = NewViewport(10)
	if top, bottom := v.VisibleLines(); top != 0 || bottom != 9 {
		t.Errorf("VisibleLines() = %d, %d, want 0, 9", top, bottom)
	}
}

func TestBottomLineClampsToBuffer(t *testing.T) {
	v := NewViewport(10)
	v.SetMaxLine(4)
	if got := v.BottomLine(); got != 3 {
		t.Errorf("BottomLine() = %d, want 3", got)
	}
}

func TestScroll(t *testing.T) {
	tests := []struct {
		name string
		op   func(v *Viewport)
		want uint32
	}{
		{"ScrollBy down", func(v *Viewport) { v.ScrollBy(5) }, 5},
		{"ScrollBy up past top", func(v *Viewport) { v.ScrollBy(-5) }, 0},
		{"ScrollBy past end", func(v *Viewport) { v.ScrollBy(500) }, 90},
		{"ScrollTo", func(v *Viewport) { v.ScrollTo(42) }, 42},
		{"ScrollTo past end", func(v *Viewport) { v.ScrollTo(99) }, 90},
		{"ScrollPage down", func(v *Viewport) { v.ScrollPage(true) }, 9},
		{"ScrollPage up", func(v *Viewport) { v.ScrollTo(20); v.ScrollPage(false) }, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(10)
			v.SetMaxLine(100)
			tt.op(v)
			if got := v.TopLine(); got != tt.want {
				t.Errorf("TopLine() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestShortBufferNeverScrolls(t *testing.T) {
	v := NewViewport(10)
	v.SetMaxLine(5)
	v.ScrollBy(3)
	if v.TopLine() != 0 {
		t.Errorf("TopLine() = %d, want 0", v.TopLine())
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name   string
		top    uint32
		margin int
		line   uint32
		want   uint32
	}{
		{"already visible", 0, 0, 5, 0},
		{"below", 0, 0, 15, 6},
		{"above", 20, 0, 10, 10},
		{"below with margin", 0, 2, 15, 8},
		{"above with margin", 20, 2, 10, 8},
		{"margin near top", 5, 3, 1, 0},
		{"inside margin", 10, 3, 11, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(10)
			v.SetMaxLine(100)
			v.ScrollTo(tt.top)
			v.SetMargin(tt.margin)
			v.EnsureVisible(tt.line)
			if got := v.TopLine(); got != tt.want {
				t.Errorf("TopLine() = %d, want %d", got, tt.want)
			}
			if !v.IsLineVisible(tt.line) {
				t.Errorf("line %d not visible after EnsureVisible", tt.line)
			}
		})
	}
}

func TestOnChange(t *testing.T) {
	v := NewViewport(10)
	v.SetMaxLine(100)

	var calls int
	var gotTop, gotBottom uint32
	v.OnChange(func(top, bottom uint32) {
		calls++
		gotTop, gotBottom = top, bottom
	})

	v.ScrollBy(3)
	if calls != 1 || gotTop != 3 || gotBottom != 12 {
		t.Errorf("after ScrollBy: calls=%d range=%d-%d, want 1 3-12", calls, gotTop, gotBottom)
	}

	v.ScrollTo(3)
	v.EnsureVisible(5)
	if calls != 1 {
		t.Errorf("no-op moves fired callback: calls=%d", calls)
	}

	v.Resize(20)
	if calls != 2 || gotBottom != 22 {
		t.Errorf("after Resize: calls=%d bottom=%d, want 2 22", calls, gotBottom)
	}
}
