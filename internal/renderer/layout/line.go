// Package layout provides line layout computation for the renderer.
package layout

import (
	"unicode/utf8"

	"github.com/dshills/hintjump/internal/renderer/core"
)

// DefaultTabWidth is used when a non-positive width is configured.
const DefaultTabWidth = 4

// LineLayout represents the visual layout of a single buffer line.
type LineLayout struct {
	// Source information
	BufferLine uint32 // The buffer line number (0-indexed)

	// Visual representation
	Cells []core.Cell // Visual cells (after tab expansion, etc.)

	// byteCells maps a byte column to the first cell it occupies. It has
	// one extra entry for the end of the line.
	byteCells []uint32

	// Metadata
	Width   int  // Total visual width in columns
	HasTabs bool // Contains tab characters
	HasWide bool // Contains wide (CJK) characters
}

// CellColumn converts a byte column to a cell column. Columns inside a
// multi-byte rune resolve to the rune's cell; columns past the end of the
// line extrapolate one cell per byte.
func (l *LineLayout) CellColumn(byteCol uint32) uint32 {
	if len(l.byteCells) == 0 {
		return byteCol
	}
	last := uint32(len(l.byteCells) - 1)
	if byteCol > last {
		return l.byteCells[last] + byteCol - last
	}
	return l.byteCells[byteCol]
}

// IsEmpty returns true if the layout represents an empty line.
func (l *LineLayout) IsEmpty() bool {
	return len(l.Cells) == 0
}

// LayoutEngine computes line layouts.
type LayoutEngine struct {
	tabWidth int
}

// NewLayoutEngine creates a layout engine with the given tab width.
func NewLayoutEngine(tabWidth int) *LayoutEngine {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return &LayoutEngine{tabWidth: tabWidth}
}

// TabWidth returns the current tab width.
func (e *LayoutEngine) TabWidth() int {
	return e.tabWidth
}

// Layout computes the visual layout for a line.
func (e *LayoutEngine) Layout(line string, bufferLine uint32) *LineLayout {
	layout := &LineLayout{
		BufferLine: bufferLine,
		Cells:      make([]core.Cell, 0, len(line)),
		byteCells:  make([]uint32, len(line)+1),
	}

	defaultStyle := core.DefaultStyle()
	visCol := 0

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		for b := i; b < i+size; b++ {
			layout.byteCells[b] = uint32(visCol)
		}
		i += size

		if r == '\t' {
			layout.HasTabs = true
			tabStop := e.tabWidth - (visCol % e.tabWidth)
			for j := 0; j < tabStop; j++ {
				layout.Cells = append(layout.Cells, core.Cell{Rune: ' ', Width: 1, Style: defaultStyle})
			}
			visCol += tabStop
			continue
		}

		width := core.RuneWidth(r)
		if width == 0 {
			// Control character: shown as a placeholder so labels stay aligned.
			r, width = '?', 1
		}
		layout.Cells = append(layout.Cells, core.Cell{Rune: r, Width: width, Style: defaultStyle})
		visCol++
		if width == 2 {
			layout.HasWide = true
			layout.Cells = append(layout.Cells, core.ContinuationCell())
			visCol++
		}
	}

	layout.byteCells[len(line)] = uint32(visCol)
	layout.Width = visCol
	return layout
}
