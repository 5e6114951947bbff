package overlay

import (
	"sort"
	"sync"

	"github.com/dshills/hintjump/internal/renderer/core"
)

// Manager manages all overlays of one pane and composites them for
// rendering.
type Manager struct {
	mu sync.RWMutex

	// overlays contains all registered overlays, keyed by ID.
	overlays map[string]Overlay

	// sortedIDs contains overlay IDs sorted by priority.
	sortedIDs []string

	// needsSort indicates the sortedIDs needs re-sorting.
	needsSort bool

	// groups maps an owner to the overlay IDs it installed.
	groups map[string][]string

	// config holds the overlay configuration.
	config Config
}

// NewManager creates a new overlay manager.
func NewManager(config Config) *Manager {
	return &Manager{
		overlays:  make(map[string]Overlay),
		sortedIDs: make([]string, 0),
		groups:    make(map[string][]string),
		config:    config,
	}
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// SetConfig updates the configuration.
func (m *Manager) SetConfig(config Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// Add adds an overlay to the manager, replacing one with the same ID.
func (m *Manager) Add(overlay Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addLocked(overlay)
}

func (m *Manager) addLocked(overlay Overlay) {
	id := overlay.ID()
	if _, exists := m.overlays[id]; !exists {
		m.sortedIDs = append(m.sortedIDs, id)
	}
	m.overlays[id] = overlay
	m.needsSort = true
}

// Remove removes an overlay by ID.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeOverlayLocked(id)
}

// Get returns an overlay by ID.
func (m *Manager) Get(id string) (Overlay, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	overlay, ok := m.overlays[id]
	return overlay, ok
}

// Clear removes all overlays.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overlays = make(map[string]Overlay)
	m.sortedIDs = make([]string, 0)
	m.groups = make(map[string][]string)
}

// ClearType removes all overlays of a specific type.
func (m *Manager) ClearType(typ Type) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var toRemove []string
	for id, overlay := range m.overlays {
		if overlay.Type() == typ {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		m.removeOverlayLocked(id)
	}
}

// SetGroup replaces every overlay previously installed by group with
// overlays. An empty slice clears the group.
func (m *Manager) SetGroup(group string, overlays []Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearGroupLocked(group)
	if len(overlays) == 0 {
		return
	}
	ids := make([]string, 0, len(overlays))
	for _, o := range overlays {
		m.addLocked(o)
		ids = append(ids, o.ID())
	}
	m.groups[group] = ids
}

// ClearGroup removes every overlay installed by group.
func (m *Manager) ClearGroup(group string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearGroupLocked(group)
}

// GroupCount returns how many overlays group currently owns.
func (m *Manager) GroupCount(group string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups[group])
}

func (m *Manager) clearGroupLocked(group string) {
	for _, id := range m.groups[group] {
		m.removeOverlayLocked(id)
	}
	delete(m.groups, group)
}

// Count returns the number of overlays.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.overlays)
}

// SpansForLine returns all overlay spans for a line, sorted by priority.
func (m *Manager) SpansForLine(line uint32, cols ColumnMapper) []Span {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSorted()

	var spans []Span
	for _, id := range m.sortedIDs {
		overlay := m.overlays[id]
		if !overlay.Range().ContainsLine(line) {
			continue
		}
		if !m.isTypeEnabled(overlay.Type()) {
			continue
		}
		spans = append(spans, overlay.SpansForLine(line, cols)...)
	}
	return spans
}

// isTypeEnabled checks if an overlay type is enabled in config.
func (m *Manager) isTypeEnabled(typ Type) bool {
	switch typ {
	case TypeSearchMatch:
		return m.config.ShowMatches
	default:
		return true
	}
}

// ensureSorted ensures the sortedIDs list is sorted by priority.
// Equal priorities keep insertion order.
func (m *Manager) ensureSorted() {
	if !m.needsSort {
		return
	}

	sort.SliceStable(m.sortedIDs, func(i, j int) bool {
		oi := m.overlays[m.sortedIDs[i]]
		oj := m.overlays[m.sortedIDs[j]]
		return oi.Priority() < oj.Priority()
	})

	m.needsSort = false
}

// removeOverlayLocked removes an overlay (must hold write lock).
func (m *Manager) removeOverlayLocked(id string) bool {
	if _, ok := m.overlays[id]; !ok {
		return false
	}
	delete(m.overlays, id)
	for i, sid := range m.sortedIDs {
		if sid == id {
			m.sortedIDs = append(m.sortedIDs[:i], m.sortedIDs[i+1:]...)
			break
		}
	}
	return true
}

// Compositor composites overlay spans onto base content.
type Compositor struct{}

// NewCompositor creates a new compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// CompositeLine composites spans onto a line of cells, in order. Spans with
// Text replace the covered cells and may extend the line past its end.
func (c *Compositor) CompositeLine(baseCells []core.Cell, spans []Span) []core.Cell {
	if len(spans) == 0 {
		return baseCells
	}

	result := make([]core.Cell, len(baseCells))
	copy(result, baseCells)

	for _, span := range spans {
		if span.Text != "" {
			result = c.replace(result, span)
			continue
		}
		for col := span.StartCol; col < span.EndCol && col < uint32(len(result)); col++ {
			result[col].Style = result[col].Style.Merge(span.Style)
		}
	}
	return result
}

// replace writes span.Text over the cells starting at span.StartCol.
func (c *Compositor) replace(cells []core.Cell, span Span) []core.Cell {
	text := core.CellsFromString(span.Text, core.DefaultStyle())
	end := int(span.StartCol) + len(text)
	for len(cells) < end {
		cells = append(cells, core.EmptyCell())
	}

	start := int(span.StartCol)
	// Never leave half of a wide character behind.
	if start > 0 && cells[start].IsContinuation() {
		cells[start-1] = core.NewStyledCell(' ', cells[start-1].Style)
	}
	if end < len(cells) && cells[end].IsContinuation() {
		cells[end] = core.NewStyledCell(' ', cells[end].Style)
	}

	for i, cell := range text {
		base := cells[start+i].Style
		cell.Style = base.Merge(span.Style)
		cells[start+i] = cell
	}
	return cells
}
