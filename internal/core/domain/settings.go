package domain

// Tokenizer names accepted by configuration.
const (
	WordTokenizerWordPunct = "wordpunct"
	WordTokenizerUAX29     = "uax29"

	SentenceTokenizerUAX29 = "uax29"
	SentenceTokenizerNone  = "none"
)

// CorpusSettings holds the configuration for one corpus root.
type CorpusSettings struct {
	// Root is the corpus root: a local directory or any afs URL.
	Root string

	// Metadata is the catalog path relative to Root.
	Metadata string

	// Columns names the catalog columns.
	Columns Columns

	// ParseDirs are the parse directories counted by statistics.
	ParseDirs []string

	// Content selects title, abstract and body extraction.
	Content ContentFlags

	// Policy resolves identities with both parse kinds.
	Policy ResolutionPolicy

	// WordTokenizer names the word tokenizer.
	WordTokenizer string

	// SentenceTokenizer names the sentence tokenizer; "none" disables it.
	SentenceTokenizer string
}

// DefaultCorpusSettings returns settings that match the CORD-19 layout.
func DefaultCorpusSettings() CorpusSettings {
	return CorpusSettings{
		Metadata: "metadata.csv",
		Columns:  DefaultColumns(),
		ParseDirs: []string{
			"document_parses/pdf_json",
			"document_parses/pmc_json",
		},
		Content:           DefaultContentFlags(),
		Policy:            DefaultPolicy(),
		WordTokenizer:     WordTokenizerWordPunct,
		SentenceTokenizer: SentenceTokenizerUAX29,
	}
}

// PrecomputeSettings configures precompute runs.
type PrecomputeSettings struct {
	// Workers bounds the number of files processed concurrently.
	Workers int

	// ProgressEvery logs progress every N files. Zero disables it.
	ProgressEvery int

	// Store selects the artifact store: "sqlite" or "dir".
	Store string

	// Out is the artifact location. Empty means the config directory.
	Out string
}

// Artifact store names.
const (
	ArtifactStoreSQLite = "sqlite"
	ArtifactStoreDir    = "dir"
)

// DefaultPrecomputeSettings returns the default precompute settings.
func DefaultPrecomputeSettings() PrecomputeSettings {
	return PrecomputeSettings{
		Workers:       4,
		ProgressEvery: 1000,
		Store:         ArtifactStoreSQLite,
	}
}

// PipelineConfig holds token filter pipeline configuration.
// Uses generic map-based config for extensibility - new filters can be added
// without modifying this struct.
type PipelineConfig struct {
	// Filters is the ordered list of filter names to run.
	Filters []string

	// FilterConfigs holds per-filter configuration as generic maps.
	FilterConfigs map[string]map[string]any
}

// GetFilterConfig returns config for a specific filter, or nil if not set.
func (c *PipelineConfig) GetFilterConfig(name string) map[string]any {
	if c.FilterConfigs == nil {
		return nil
	}
	return c.FilterConfigs[name]
}

// DefaultPipelineConfig lowercases then stems.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Filters: []string{"lowercase", "stem"},
	}
}
