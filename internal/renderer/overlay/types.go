// Package overlay draws hint labels and search-match highlights on top of
// document text.
//
// Overlays are positioned in buffer coordinates (line, byte column). The
// pane renderer supplies a ColumnMapper per line so spans can be placed in
// screen cells, which keeps labels aligned over tabs and wide characters.
package overlay

import (
	"github.com/dshills/hintjump/internal/renderer/core"
)

// Type represents the kind of overlay.
type Type uint8

const (
	// TypeHintLabel is a jump label drawn over its target.
	TypeHintLabel Type = iota

	// TypeSearchMatch highlights the rest of a search match after its label.
	TypeSearchMatch
)

// String returns the string representation of the overlay type.
func (t Type) String() string {
	switch t {
	case TypeHintLabel:
		return "hint-label"
	case TypeSearchMatch:
		return "search-match"
	default:
		return "unknown"
	}
}

// Priority represents the rendering priority of overlays.
// Higher priority overlays are rendered on top.
type Priority uint8

const (
	PriorityLow    Priority = 50
	PriorityNormal Priority = 100
	PriorityHigh   Priority = 150
)

// Position represents a position in the buffer.
type Position struct {
	Line uint32
	Col  uint32
}

// Range represents a range in the buffer.
type Range struct {
	Start Position
	End   Position
}

// ContainsLine returns true if the line is within the range.
func (r Range) ContainsLine(line uint32) bool {
	return line >= r.Start.Line && line <= r.End.Line
}

// ColumnMapper converts byte columns of one buffer line to screen cell
// columns relative to the start of the line.
type ColumnMapper interface {
	CellColumn(byteCol uint32) uint32
}

// Overlay represents a visual overlay on the document.
type Overlay interface {
	// ID returns the unique identifier for this overlay.
	ID() string

	// Type returns the type of overlay.
	Type() Type

	// Priority returns the rendering priority.
	Priority() Priority

	// Range returns the affected buffer range.
	Range() Range

	// SpansForLine returns the cell spans on line, or nil.
	SpansForLine(line uint32, cols ColumnMapper) []Span
}

// Span is a styled run of cells on one screen row.
type Span struct {
	// StartCol is the first cell column (0-indexed, line relative).
	StartCol uint32

	// EndCol is the ending cell column (exclusive).
	EndCol uint32

	// Text replaces the covered cells when non-empty.
	Text string

	// Style is the visual style for this span.
	Style core.Style
}

// BaseOverlay provides common functionality for overlay implementations.
type BaseOverlay struct {
	id       string
	typ      Type
	priority Priority
	rng      Range
}

// NewBaseOverlay creates a new base overlay.
func NewBaseOverlay(id string, typ Type, priority Priority, rng Range) BaseOverlay {
	return BaseOverlay{
		id:       id,
		typ:      typ,
		priority: priority,
		rng:      rng,
	}
}

// ID returns the overlay ID.
func (o BaseOverlay) ID() string {
	return o.id
}

// Type returns the overlay type.
func (o BaseOverlay) Type() Type {
	return o.typ
}

// Priority returns the overlay priority.
func (o BaseOverlay) Priority() Priority {
	return o.priority
}

// Range returns the overlay range.
func (o BaseOverlay) Range() Range {
	return o.rng
}

// Config holds configuration for overlay rendering.
type Config struct {
	// LabelStyle is the style of label characters not yet typed.
	LabelStyle core.Style

	// TypedStyle is the style of label characters already typed.
	TypedStyle core.Style

	// MatchStyle highlights the part of a search match after its label.
	MatchStyle core.Style

	// ShowMatches enables search-match highlighting.
	ShowMatches bool
}

// DefaultConfig returns the default overlay configuration.
func DefaultConfig() Config {
	return Config{
		LabelStyle: core.NewStyle(core.ColorBlack).
			WithBackground(core.ColorFromRGB(255, 200, 80)).
			Bold(),
		TypedStyle: core.NewStyle(core.ColorFromRGB(90, 90, 90)).
			WithBackground(core.ColorFromRGB(255, 200, 80)),
		MatchStyle:  core.DefaultStyle().WithBackground(core.ColorFromRGB(70, 90, 140)),
		ShowMatches: true,
	}
}
