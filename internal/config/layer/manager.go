package layer

import (
	"sort"
	"sync"
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer       // Sorted by priority (ascending)
	merged map[string]any // Cached merged result
	dirty  bool
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// SetLayer adds l, replacing any layer with the same name.
func (m *Manager) SetLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.layers {
		if existing.Name == l.Name {
			m.layers[i] = l
			m.sortLayers()
			m.dirty = true
			return
		}
	}
	m.layers = append(m.layers, l)
	m.sortLayers()
	m.dirty = true
}

// RemoveLayer removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Layer returns a layer by name, or nil.
func (m *Manager) Layer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Layers returns the layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Layer(nil), m.layers...)
}

// Merge combines all layers into a single configuration map.
// The result is cached until a layer changes; callers get a copy.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, l := range m.layers {
			result = DeepMerge(result, l.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return cloneMap(m.merged)
}

// Get returns the effective value for a path and the name of the layer
// that supplied it.
func (m *Manager) Get(path string) (any, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := GetByPath(m.layers[i].Data, path); ok {
			return val, m.layers[i].Name, true
		}
	}
	return nil, "", false
}

// sortLayers sorts layers by priority (must hold lock).
func (m *Manager) sortLayers() {
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
}
