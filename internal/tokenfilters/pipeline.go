// Package tokenfilters provides token filter implementations and the
// pipeline that chains them for lemma artifacts.
package tokenfilters

import (
	"fmt"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.TokenFilterPipeline = (*Pipeline)(nil)

// Pipeline chains multiple TokenFilters and runs them in order.
type Pipeline struct {
	filters []driven.TokenFilter
}

// NewPipeline creates a new pipeline with the given filters.
// Filters are executed in the order provided.
func NewPipeline(filters ...driven.TokenFilter) *Pipeline {
	return &Pipeline{filters: filters}
}

// Build creates a pipeline from configuration using the registry.
func Build(r *Registry, cfg domain.PipelineConfig) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range cfg.Filters {
		f, err := r.Build(name, cfg.GetFilterConfig(name))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedType, err)
		}
		p.Add(f)
	}
	return p, nil
}

// Apply runs the tokens through all filters in order.
// The input slice is never modified.
func (p *Pipeline) Apply(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	for _, f := range p.filters {
		out = f.Filter(out)
	}
	return out
}

// Add appends a filter to the pipeline.
func (p *Pipeline) Add(filter driven.TokenFilter) {
	p.filters = append(p.filters, filter)
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}

// Names returns the filter names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.filters))
	for i, f := range p.filters {
		names[i] = f.Name()
	}
	return names
}
