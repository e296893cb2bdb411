package driven

// TokenFilter transforms a token sequence (e.g., lowercasing, stemming).
// Filters are chained in a pipeline.
type TokenFilter interface {
	// Name returns the filter name for logging and configuration.
	Name() string

	// Filter returns the transformed tokens. It may drop tokens.
	Filter(tokens []string) []string
}

// TokenFilterPipeline chains multiple TokenFilters.
type TokenFilterPipeline interface {
	// Apply runs the tokens through all filters in order.
	Apply(tokens []string) []string
}
