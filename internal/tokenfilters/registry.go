package tokenfilters

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// BuilderFunc creates a TokenFilter from generic config.
// Config is a map of filter-specific settings parsed from user config.
type BuilderFunc func(cfg map[string]any) (driven.TokenFilter, error)

// Registry maps filter names to their builders.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new filter registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a filter builder to the registry.
// Name should match the filter's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a filter by name with the given config.
func (r *Registry) Build(name string, cfg map[string]any) (driven.TokenFilter, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter: %s", name)
	}
	return builder(cfg)
}

// Has returns true if a filter with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered filter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
