package tokenfilters

import (
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/tokenfilters/lowercase"
	"github.com/custodia-labs/paperstream/internal/tokenfilters/stem"
)

// RegisterDefaults registers all built-in filters with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(lowercase.Name, buildLowercase)
	r.Register(stem.Name, buildStem)
}

// DefaultRegistry returns a registry with the built-in filters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func buildLowercase(_ map[string]any) (driven.TokenFilter, error) {
	return lowercase.New(), nil
}

// buildStem creates a Snowball English stemmer from generic config.
// Supported config keys:
//   - stem_stopwords (bool): Stem stop words too (default: true)
//   - min_length (int): Leave shorter tokens untouched (default: 0)
func buildStem(cfg map[string]any) (driven.TokenFilter, error) {
	var opts []stem.Option

	if cfg != nil {
		if v, ok := cfg["stem_stopwords"].(bool); ok {
			opts = append(opts, stem.WithStopWords(v))
		}
		if n := getIntFromConfig(cfg, "min_length"); n > 0 {
			opts = append(opts, stem.WithMinLength(n))
		}
	}

	return stem.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
