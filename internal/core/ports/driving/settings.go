package driving

import "github.com/custodia-labs/paperstream/internal/core/domain"

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Corpus returns the corpus settings with defaults applied.
	// Returns domain.ErrPolicy for an invalid preference.
	Corpus() (domain.CorpusSettings, error)

	// Precompute returns the precompute settings with defaults applied.
	Precompute() domain.PrecomputeSettings

	// Pipeline returns the token filter pipeline configuration.
	Pipeline() domain.PipelineConfig

	// Set validates and persists one setting.
	Set(key, value string) error

	// Values returns every stored key with its value.
	Values() map[string]any
}
