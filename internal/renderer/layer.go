package renderer

import (
	"fmt"

	"github.com/dshills/hintjump/internal/hint"
	"github.com/dshills/hintjump/internal/renderer/core"
	"github.com/dshills/hintjump/internal/renderer/overlay"
)

// Acquire implements hint.Renderer. The returned layer draws hints over
// the pane whose ID is editor.
func (r *Renderer) Acquire(editor string, mode hint.Mode) (hint.Layer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.paneLocked(editor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPane, editor)
	}
	r.nextLayer++
	r.layers++
	return &layer{
		r:     r,
		pane:  p,
		mode:  mode,
		group: fmt.Sprintf("hint-%d", r.nextLayer),
	}, nil
}

// ActiveLayers returns how many acquired layers have not been released.
func (r *Renderer) ActiveLayers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layers
}

// LabelWidth returns the number of cells label covers on screen.
func LabelWidth(label string) int {
	return core.StringWidth(label)
}

// layer owns one overlay group in a pane.
type layer struct {
	r        *Renderer
	pane     *Pane
	mode     hint.Mode
	group    string
	released bool
}

// Draw implements hint.Layer.
func (l *layer) Draw(hints []hint.Hint) {
	if l.released {
		return
	}
	config := l.pane.overlays.Config()
	overlays := make([]overlay.Overlay, 0, len(hints)*2)
	for i, h := range hints {
		start := overlay.Position{Line: h.Target.Start.Line, Col: h.Target.Start.Column}
		label := overlay.NewLabelOverlay(overlay.LabelID(l.group, i), start, h.Label, h.Typed, config)
		overlays = append(overlays, label)

		if l.mode == hint.ModeSearchHint && h.Target.IsRange() && h.Target.End.Line == h.Target.Start.Line {
			rng := overlay.Range{
				Start: start,
				End:   overlay.Position{Line: h.Target.End.Line, Col: h.Target.End.Column},
			}
			overlays = append(overlays, overlay.NewMatchOverlay(overlay.MatchID(l.group, i), rng, uint32(LabelWidth(h.Label)), config))
		}
	}
	l.pane.overlays.SetGroup(l.group, overlays)
	l.r.MarkDirty()
}

// Release implements hint.Layer.
func (l *layer) Release() {
	if l.released {
		return
	}
	l.released = true
	l.pane.overlays.ClearGroup(l.group)

	l.r.mu.Lock()
	l.r.layers--
	l.r.needsRedraw = true
	l.r.mu.Unlock()
}
