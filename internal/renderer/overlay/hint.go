package overlay

import (
	"fmt"

	"github.com/dshills/hintjump/internal/renderer/core"
)

// LabelOverlay draws a jump label over the first cells of its target.
// The first Typed runes use the typed style.
type LabelOverlay struct {
	BaseOverlay
	label      string
	typed      int
	labelStyle core.Style
	typedStyle core.Style
}

// NewLabelOverlay creates a label at pos.
func NewLabelOverlay(id string, pos Position, label string, typed int, config Config) *LabelOverlay {
	return &LabelOverlay{
		BaseOverlay: NewBaseOverlay(id, TypeHintLabel, PriorityHigh, Range{Start: pos, End: pos}),
		label:       label,
		typed:       typed,
		labelStyle:  config.LabelStyle,
		typedStyle:  config.TypedStyle,
	}
}

// Label returns the label text.
func (o *LabelOverlay) Label() string {
	return o.label
}

// Width returns the label's display width in cells.
func (o *LabelOverlay) Width() uint32 {
	return uint32(core.StringWidth(o.label))
}

// SpansForLine implements Overlay. It returns one span per label rune so
// that the typed prefix can be styled apart.
func (o *LabelOverlay) SpansForLine(line uint32, cols ColumnMapper) []Span {
	if line != o.rng.Start.Line || o.label == "" {
		return nil
	}
	col := cols.CellColumn(o.rng.Start.Col)
	spans := make([]Span, 0, len(o.label))
	i := 0
	for _, r := range o.label {
		w := uint32(max(core.RuneWidth(r), 1))
		style := o.labelStyle
		if i < o.typed {
			style = o.typedStyle
		}
		spans = append(spans, Span{StartCol: col, EndCol: col + w, Text: string(r), Style: style})
		col += w
		i++
	}
	return spans
}

// MatchOverlay highlights a single-line search match, skipping the cells
// its label covers.
type MatchOverlay struct {
	BaseOverlay
	labelWidth uint32
	style      core.Style
}

// NewMatchOverlay creates a highlight for rng whose label is labelWidth
// cells wide.
func NewMatchOverlay(id string, rng Range, labelWidth uint32, config Config) *MatchOverlay {
	return &MatchOverlay{
		BaseOverlay: NewBaseOverlay(id, TypeSearchMatch, PriorityNormal, rng),
		labelWidth:  labelWidth,
		style:       config.MatchStyle,
	}
}

// SpansForLine implements Overlay.
func (o *MatchOverlay) SpansForLine(line uint32, cols ColumnMapper) []Span {
	if line != o.rng.Start.Line {
		return nil
	}
	start := cols.CellColumn(o.rng.Start.Col) + o.labelWidth
	end := cols.CellColumn(o.rng.End.Col)
	if end <= start {
		return nil
	}
	return []Span{{StartCol: start, EndCol: end, Style: o.style}}
}

// LabelID returns the overlay ID used for label n of a group.
func LabelID(group string, n int) string {
	return fmt.Sprintf("%s/label/%d", group, n)
}

// MatchID returns the overlay ID used for match n of a group.
func MatchID(group string, n int) string {
	return fmt.Sprintf("%s/match/%d", group, n)
}
