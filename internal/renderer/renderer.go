package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dshills/hintjump/internal/engine/buffer"
	"github.com/dshills/hintjump/internal/renderer/backend"
	"github.com/dshills/hintjump/internal/renderer/core"
	"github.com/dshills/hintjump/internal/renderer/layout"
	"github.com/dshills/hintjump/internal/renderer/overlay"
	"github.com/dshills/hintjump/internal/renderer/statusline"
)

// ErrUnknownPane is returned when a pane ID does not exist.
var ErrUnknownPane = errors.New("unknown pane")

// Options configures the renderer.
type Options struct {
	// Display
	ShowLineNumbers bool // Show line numbers in gutter
	TabWidth        int  // Columns per tab stop

	// Scrolling
	ScrollMargin int // Lines kept between the cursor and the pane edges

	// Performance
	LineCacheSize int // Line layouts cached per pane

	// Styles
	Overlay        overlay.Config
	GutterStyle    core.Style
	SeparatorStyle core.Style
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers: true,
		TabWidth:        layout.DefaultTabWidth,
		ScrollMargin:    3,
		LineCacheSize:   256,
		Overlay:         overlay.DefaultConfig(),
		GutterStyle:     core.DefaultStyle().Dim(),
		SeparatorStyle:  core.DefaultStyle().WithForeground(core.ColorGray),
	}
}

// Renderer is the main rendering facade.
type Renderer struct {
	mu sync.Mutex

	opts       Options
	backend    backend.Backend
	width      int
	height     int
	panes      []*Pane
	focus      int
	status     *statusline.StatusLine
	compositor *overlay.Compositor

	layers      int
	nextLayer   uint64
	frameCount  uint64
	needsRedraw bool
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	width, height := b.Size()
	r := &Renderer{
		opts:        opts,
		backend:     b,
		width:       width,
		height:      height,
		status:      statusline.New(),
		compositor:  overlay.NewCompositor(),
		needsRedraw: true,
	}
	r.status.Resize(width)
	return r
}

// AddPane opens buf in a new pane to the right of the existing ones.
func (r *Renderer) AddPane(id, name string, buf *buffer.Buffer) *Pane {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := newPane(id, name, buf, r.opts)
	r.panes = append(r.panes, p)
	r.layoutPanes()
	return p
}

// Panes returns the panes from left to right.
func (r *Renderer) Panes() []*Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Pane(nil), r.panes...)
}

// Pane returns the pane with the given ID.
func (r *Renderer) Pane(id string) (*Pane, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paneLocked(id)
}

func (r *Renderer) paneLocked(id string) (*Pane, bool) {
	for _, p := range r.panes {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// Focused returns the focused pane, or nil when there are none.
func (r *Renderer) Focused() *Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.panes) == 0 {
		return nil
	}
	return r.panes[r.focus]
}

// SetFocus focuses the pane with the given ID.
func (r *Renderer) SetFocus(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.panes {
		if p.id == id {
			r.focus = i
			r.needsRedraw = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownPane, id)
}

// FocusNext moves focus delta panes to the right, wrapping around.
func (r *Renderer) FocusNext(delta int) *Pane {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.panes)
	if n == 0 {
		return nil
	}
	r.focus = ((r.focus+delta)%n + n) % n
	r.needsRedraw = true
	return r.panes[r.focus]
}

// StatusLine returns the status line.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

// SetOverlayConfig updates label and match styles on every pane.
func (r *Renderer) SetOverlayConfig(config overlay.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts.Overlay = config
	for _, p := range r.panes {
		p.overlays.SetConfig(config)
	}
	r.needsRedraw = true
}

// Resize handles terminal resize events.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width = width
	r.height = height
	r.status.Resize(width)
	r.layoutPanes()
}

// Size returns the current screen dimensions.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// layoutPanes splits the screen above the status line into equal columns
// separated by one cell (must hold lock).
func (r *Renderer) layoutPanes() {
	r.needsRedraw = true
	n := len(r.panes)
	if n == 0 {
		return
	}
	bottom := max(r.height-r.status.Height(), 0)
	width := max((r.width-(n-1))/n, 0)
	left := 0
	for i, p := range r.panes {
		right := left + width
		if i == n-1 {
			right = max(r.width, left)
		}
		p.setRect(core.ScreenRect{Top: 0, Left: left, Bottom: bottom, Right: right}, r.opts.ShowLineNumbers)
		left = right + 1
	}
}

// MarkDirty marks the renderer as needing a redraw.
func (r *Renderer) MarkDirty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.needsRedraw = true
}

// NeedsRedraw returns true if the renderer needs to redraw.
func (r *Renderer) NeedsRedraw() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.needsRedraw
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Render draws a frame if anything changed.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.needsRedraw {
		return
	}
	r.render()
}

// RenderNow draws a frame unconditionally.
func (r *Renderer) RenderNow() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.render()
}

// render performs the actual rendering (must hold lock).
func (r *Renderer) render() {
	r.backend.HideCursor()
	for i, p := range r.panes {
		r.renderPane(p)
		if i < len(r.panes)-1 {
			r.backend.Fill(core.ScreenRect{Top: p.rect.Top, Left: p.rect.Right, Bottom: p.rect.Bottom, Right: p.rect.Right + 1},
				core.NewStyledCell('│', r.opts.SeparatorStyle))
		}
	}

	if len(r.panes) > 0 {
		focused := r.panes[r.focus]
		pt := focused.CursorPoint()
		r.status.SetFilename(focused.name)
		r.status.SetPosition(pt.Line+1, pt.Column+1)
		if x, y, ok := focused.screenPosition(pt); ok {
			r.backend.ShowCursor(x, y)
		}
	}
	// The prompt places the cursor when open.
	r.status.Render(r.backend, r.height-1)

	r.backend.Show()
	r.needsRedraw = false
	r.frameCount++
}

// renderPane draws every visible row of p (must hold lock).
func (r *Renderer) renderPane(p *Pane) {
	top := p.viewport.TopLine()
	lineCount := p.buf.LineCount()
	contentLeft := p.rect.Left + p.gutterWidth
	contentWidth := p.contentWidth()

	for row := 0; row < p.rect.Height(); row++ {
		y := p.rect.Top + row
		line := top + uint32(row)

		if line >= lineCount {
			r.backend.Fill(core.ScreenRect{Top: y, Left: contentLeft, Bottom: y + 1, Right: p.rect.Right}, core.EmptyCell())
			if p.gutterWidth == 0 {
				r.backend.SetCell(contentLeft, y, core.NewStyledCell('~', r.opts.GutterStyle))
			} else {
				r.renderGutter(p, y, "~")
			}
			continue
		}
		r.renderGutter(p, y, strconv.FormatUint(uint64(line)+1, 10))

		l := p.cache.Get(line, p.buf.LineText(line))
		cells := r.compositor.CompositeLine(l.Cells, p.overlays.SpansForLine(line, l))
		for x := 0; x < contentWidth; x++ {
			cell := core.EmptyCell()
			if x < len(cells) {
				cell = cells[x]
			}
			if cell.IsContinuation() {
				continue
			}
			if cell.Width == 2 && x == contentWidth-1 {
				// Half a wide character does not fit.
				cell = core.NewStyledCell(' ', cell.Style)
			}
			r.backend.SetCell(contentLeft+x, y, cell)
		}
	}
}

// renderGutter draws a right-aligned line number (must hold lock).
func (r *Renderer) renderGutter(p *Pane, y int, text string) {
	if p.gutterWidth == 0 {
		return
	}
	pad := p.gutterWidth - 1 - len(text)
	for x := 0; x < p.gutterWidth; x++ {
		ch := ' '
		if i := x - pad; i >= 0 && i < len(text) {
			ch = rune(text[i])
		}
		r.backend.SetCell(p.rect.Left+x, y, core.Cell{Rune: ch, Width: 1, Style: r.opts.GutterStyle})
	}
}
