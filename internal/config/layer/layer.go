// Package layer provides configuration layers and their merging.
//
// Each source of settings (built-in defaults, the config file, the
// environment, command-line flags) is one layer. Layers are merged in
// source order; later sources override earlier ones.
package layer

import "sort"

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "defaults", "file").
	Name string

	// Source indicates where this layer was loaded from and fixes its
	// position in the merge order.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any
}

// NewLayer creates an empty layer with the standard name for source.
func NewLayer(source Source) *Layer {
	return NewLayerWithData(source, make(map[string]any))
}

// NewLayerWithData creates a layer with initial data.
func NewLayerWithData(source Source, data map[string]any) *Layer {
	return &Layer{
		Name:   source.String(),
		Source: source,
		Data:   data,
	}
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:   l.Name,
		Source: l.Source,
		Path:   l.Path,
		Data:   cloneMap(l.Data),
	}
}

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceDefaults represents built-in default configuration.
	SourceDefaults Source = iota
	// SourceFile represents the user's config file.
	SourceFile
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceFlags represents command-line flags.
	SourceFlags
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceDefaults:
		return "defaults"
	case SourceFile:
		return "file"
	case SourceEnv:
		return "environment"
	case SourceFlags:
		return "flags"
	default:
		return "unknown"
	}
}

// Stack is an ordered set of layers.
type Stack struct {
	layers []*Layer
}

// NewStack creates a stack from the given layers. Nil layers are
// skipped.
func NewStack(layers ...*Layer) *Stack {
	s := &Stack{}
	for _, l := range layers {
		s.Add(l)
	}
	return s
}

// Add inserts a layer in source order. A layer with the same source as
// an existing one is placed after it and wins the merge.
func (s *Stack) Add(l *Layer) {
	if l == nil {
		return
	}
	s.layers = append(s.layers, l)
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].Source < s.layers[j].Source
	})
}

// Layers returns the layers in merge order.
func (s *Stack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Merged returns a new map holding every layer merged in order.
// The layers are not modified.
func (s *Stack) Merged() map[string]any {
	merged := make(map[string]any)
	for _, l := range s.layers {
		merged = DeepMerge(merged, l.Data)
	}
	return merged
}

// Origin returns the layer that supplies the effective value at path.
func (s *Stack) Origin(path string) (*Layer, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, ok := GetByPath(s.layers[i].Data, path); ok {
			return s.layers[i], true
		}
	}
	return nil, false
}

// cloneMap creates a deep copy of a map.
func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[key] = cloneMap(v)
		case []any:
			dst[key] = cloneSlice(v)
		default:
			dst[key] = val
		}
	}

	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[i] = cloneMap(v)
		case []any:
			dst[i] = cloneSlice(v)
		default:
			dst[i] = val
		}
	}

	return dst
}
