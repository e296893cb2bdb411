package driven

// ConfigStore holds persisted settings as a flat map of dotted keys such
// as "corpus.root" or "pipeline.stem.min_length". Typed getters return
// the zero value when a key is absent or holds another type; use Get to
// tell the two apart.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice returns a copy, or nil when absent.
	GetStringSlice(key string) []string

	// Keys lists every stored key, sorted.
	Keys() []string

	// Set stores and persists one value.
	Set(key string, value any) error

	// Load re-reads the backing storage.
	Load() error

	// Path describes where settings are kept.
	Path() string
}
