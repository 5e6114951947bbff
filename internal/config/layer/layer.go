// Package layer holds configuration layers and merges them by priority.
package layer

// Layer is one source of configuration values.
type Layer struct {
	// Name identifies the layer ("defaults", "file", "environment").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path, if loaded from a file.
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayer creates an empty layer.
func NewLayer(name string, source Source, priority int) *Layer {
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     make(map[string]any),
	}
}

// NewLayerWithData creates a layer holding data.
func NewLayerWithData(name string, source Source, priority int, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: priority,
		Data:     data,
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Path:     l.Path,
		Data:     cloneMap(l.Data),
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in defaults.
	SourceBuiltin Source = iota
	// SourceFile represents the user's TOML or YAML file.
	SourceFile
	// SourceEnv represents HINTJUMP_* environment variables.
	SourceEnv
	// SourceArgs represents command-line flags.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Standard priority levels. Higher values override lower values.
const (
	PriorityBuiltin = 0
	PriorityFile    = 100
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// DefaultPriority returns the standard priority for a source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceFile:
		return PriorityFile
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}
