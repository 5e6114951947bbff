package renderer

import (
	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/engine/cursor"
	"github.com/dshills/hintjump/internal/renderer/core"
	"github.com/dshills/hintjump/internal/renderer/layout"
	"github.com/dshills/hintjump/internal/renderer/overlay"
	"github.com/dshills/hintjump/internal/renderer/viewport"
)

// Pane shows one document in a screen rectangle.
type Pane struct {
	id       string
	name     string
	buf      *buffer.Buffer
	sel      cursor.Selection
	viewport *viewport.Viewport
	overlays *overlay.Manager
	cache    *layout.LineCache

	rect        core.ScreenRect
	gutterWidth int
}

func newPane(id, name string, buf *buffer.Buffer, opts Options) *Pane {
	p := &Pane{
		id:       id,
		name:     name,
		buf:      buf,
		sel:      cursor.NewCursorSelection(0),
		viewport: viewport.NewViewport(1),
		overlays: overlay.NewManager(opts.Overlay),
		cache:    layout.NewLineCache(layout.NewLayoutEngine(opts.TabWidth), opts.LineCacheSize),
	}
	p.viewport.SetMargin(opts.ScrollMargin)
	p.viewport.SetMaxLine(buf.LineCount())
	return p
}

// ID returns the pane identifier. It doubles as the editor ID in hint
// targets.
func (p *Pane) ID() string {
	return p.id
}

// Name returns the display name, usually the file path.
func (p *Pane) Name() string {
	return p.name
}

// Buffer returns the document shown in the pane.
func (p *Pane) Buffer() *buffer.Buffer {
	return p.buf
}

// VisibleLines returns the first and last lines on screen.
func (p *Pane) VisibleLines() (top, bottom uint32) {
	return p.viewport.VisibleLines()
}

// Viewport returns the pane's viewport.
func (p *Pane) Viewport() *viewport.Viewport {
	return p.viewport
}

// Overlays returns the pane's overlay manager.
func (p *Pane) Overlays() *overlay.Manager {
	return p.overlays
}

// Selection returns the cursor selection.
func (p *Pane) Selection() cursor.Selection {
	return p.sel
}

// SetSelection moves the cursor, clamped to the document.
func (p *Pane) SetSelection(sel cursor.Selection) {
	p.sel = sel.Clamp(p.buf.Len())
}

// CursorPoint returns the cursor as a line and byte column.
func (p *Pane) CursorPoint() buffer.Point {
	return p.buf.OffsetToPoint(p.sel.Cursor())
}

// Rect returns the screen area of the pane, gutter included.
func (p *Pane) Rect() core.ScreenRect {
	return p.rect
}

// Reloaded drops cached layouts after the document changed on disk.
func (p *Pane) Reloaded() {
	p.cache.InvalidateAll()
	p.viewport.SetMaxLine(p.buf.LineCount())
	p.SetSelection(p.sel)
}

// setRect places the pane and sizes its viewport.
func (p *Pane) setRect(rect core.ScreenRect, showLineNumbers bool) {
	p.rect = rect
	p.gutterWidth = 0
	if showLineNumbers {
		p.gutterWidth = gutterWidth(p.buf.LineCount())
	}
	p.viewport.Resize(rect.Height())
}

// contentWidth returns the number of text columns.
func (p *Pane) contentWidth() int {
	return max(p.rect.Width()-p.gutterWidth, 0)
}

// screenPosition converts a buffer point to screen coordinates.
func (p *Pane) screenPosition(pt buffer.Point) (x, y int, ok bool) {
	if !p.viewport.IsLineVisible(pt.Line) {
		return 0, 0, false
	}
	l := p.cache.Get(pt.Line, p.buf.LineText(pt.Line))
	col := int(l.CellColumn(pt.Column))
	if col >= p.contentWidth() {
		return 0, 0, false
	}
	return p.rect.Left + p.gutterWidth + col, p.rect.Top + int(pt.Line-p.viewport.TopLine()), true
}

// gutterWidth returns the line number column width, separator included.
func gutterWidth(lineCount uint32) int {
	digits := 1
	for n := lineCount; n >= 10; n /= 10 {
		digits++
	}
	return max(digits, 3) + 1
}
