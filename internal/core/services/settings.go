package services

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyCorpusRoot      = "corpus.root"
	KeyCorpusMetadata  = "corpus.metadata"
	KeyIDColumn        = "corpus.id_column"
	KeyKindAColumn     = "corpus.kind_a_column"
	KeyKindBColumn     = "corpus.kind_b_column"
	KeyParseDirs       = "corpus.parse_dirs"
	KeyIncludeTitle    = "content.include_title"
	KeyIncludeAbstract = "content.include_abstract"
	KeyIncludeBody     = "content.include_body"
	KeyPrefer          = "policy.prefer"
	KeyOnNeither       = "policy.on_neither"
	KeyWordTokenizer   = "tokenizer.word"
	KeySentTokenizer   = "tokenizer.sentence"
	KeyFilters         = "pipeline.filters"
	KeyWorkers         = "precompute.workers"
	KeyProgressEvery   = "precompute.progress_every"
	KeyArtifactStore   = "precompute.store"
	KeyArtifactOut     = "precompute.out"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindStrings
)

// knownKeys lists every settable key with its value type.
var knownKeys = map[string]valueKind{
	KeyCorpusRoot:      kindString,
	KeyCorpusMetadata:  kindString,
	KeyIDColumn:        kindString,
	KeyKindAColumn:     kindString,
	KeyKindBColumn:     kindString,
	KeyParseDirs:       kindStrings,
	KeyIncludeTitle:    kindBool,
	KeyIncludeAbstract: kindBool,
	KeyIncludeBody:     kindBool,
	KeyPrefer:          kindString,
	KeyOnNeither:       kindString,
	KeyWordTokenizer:   kindString,
	KeySentTokenizer:   kindString,
	KeyFilters:         kindStrings,
	KeyWorkers:         kindInt,
	KeyProgressEvery:   kindInt,
	KeyArtifactStore:   kindString,
	KeyArtifactOut:     kindString,
}

// filterKeys are the per-filter options read under "pipeline.<filter>.".
var filterKeys = map[string]valueKind{
	"stem_stopwords": kindBool,
	"min_length":     kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Corpus returns the corpus settings with defaults applied.
func (s *SettingsService) Corpus() (domain.CorpusSettings, error) {
	d := domain.DefaultCorpusSettings()

	policy, err := domain.ParsePreference(
		s.getString(KeyPrefer, d.Policy.Preference()),
		domain.NeitherMode(s.getString(KeyOnNeither, d.Policy.Neither().String())),
	)
	if err != nil {
		return domain.CorpusSettings{}, err
	}

	return domain.CorpusSettings{
		Root:     s.configStore.GetString(KeyCorpusRoot),
		Metadata: s.getString(KeyCorpusMetadata, d.Metadata),
		Columns: domain.Columns{
			ID:    s.getString(KeyIDColumn, d.Columns.ID),
			KindA: s.getString(KeyKindAColumn, d.Columns.KindA),
			KindB: s.getString(KeyKindBColumn, d.Columns.KindB),
		},
		ParseDirs: s.getStrings(KeyParseDirs, d.ParseDirs),
		Content: domain.ContentFlags{
			IncludeTitle:    s.getBool(KeyIncludeTitle, d.Content.IncludeTitle),
			IncludeAbstract: s.getBool(KeyIncludeAbstract, d.Content.IncludeAbstract),
			IncludeBody:     s.getBool(KeyIncludeBody, d.Content.IncludeBody),
		},
		Policy:            policy,
		WordTokenizer:     s.getString(KeyWordTokenizer, d.WordTokenizer),
		SentenceTokenizer: s.getString(KeySentTokenizer, d.SentenceTokenizer),
	}, nil
}

// Precompute returns the precompute settings with defaults applied.
func (s *SettingsService) Precompute() domain.PrecomputeSettings {
	d := domain.DefaultPrecomputeSettings()
	return domain.PrecomputeSettings{
		Workers:       s.getInt(KeyWorkers, d.Workers),
		ProgressEvery: s.getInt(KeyProgressEvery, d.ProgressEvery),
		Store:         s.getString(KeyArtifactStore, d.Store),
		Out:           s.configStore.GetString(KeyArtifactOut),
	}
}

// Pipeline returns the token filter pipeline configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) Pipeline() domain.PipelineConfig {
	cfg := domain.DefaultPipelineConfig()
	if filters := s.configStore.GetStringSlice(KeyFilters); len(filters) > 0 {
		cfg.Filters = filters
	}

	for _, name := range cfg.Filters {
		prefix := "pipeline." + name + "."
		options := make(map[string]any)
		for key := range filterKeys {
			if val, exists := s.configStore.Get(prefix + key); exists {
				options[key] = val
			}
		}
		if len(options) > 0 {
			if cfg.FilterConfigs == nil {
				cfg.FilterConfigs = make(map[string]map[string]any)
			}
			cfg.FilterConfigs[name] = options
		}
	}
	return cfg
}

// Set validates and persists one setting.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		kind, ok = filterKey(key)
	}
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := validateValue(key, parsed); err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Values returns every stored key with its value.
func (s *SettingsService) Values() map[string]any {
	out := make(map[string]any)
	for _, key := range s.configStore.Keys() {
		if val, ok := s.configStore.Get(key); ok {
			out[key] = val
		}
	}
	return out
}

// KnownKeys returns the settable keys in sorted order.
func KnownKeys() []string {
	return slices.Sorted(maps.Keys(knownKeys))
}

func filterKey(key string) (valueKind, bool) {
	rest, ok := strings.CutPrefix(key, "pipeline.")
	if !ok {
		return 0, false
	}
	_, option, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, false
	}
	kind, ok := filterKeys[option]
	return kind, ok
}

func parseValue(kind valueKind, value string) (any, error) {
	switch kind {
	case kindBool:
		return strconv.ParseBool(value)
	case kindInt:
		return strconv.Atoi(value)
	case kindStrings:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return value, nil
	}
}

func validateValue(key string, value any) error {
	str, _ := value.(string)
	switch key {
	case KeyPrefer:
		_, err := domain.ParsePreference(str, domain.NeitherExclude)
		return err
	case KeyOnNeither:
		if !domain.NeitherMode(str).IsValid() {
			return fmt.Errorf("%w: unknown on-neither mode %q", domain.ErrPolicy, str)
		}
	case KeyWordTokenizer:
		if str != domain.WordTokenizerWordPunct && str != domain.WordTokenizerUAX29 {
			return fmt.Errorf("%w: word tokenizer %q", domain.ErrUnsupportedType, str)
		}
	case KeySentTokenizer:
		if str != domain.SentenceTokenizerUAX29 && str != domain.SentenceTokenizerNone {
			return fmt.Errorf("%w: sentence tokenizer %q", domain.ErrUnsupportedType, str)
		}
	case KeyArtifactStore:
		if str != domain.ArtifactStoreSQLite && str != domain.ArtifactStoreDir {
			return fmt.Errorf("%w: artifact store %q", domain.ErrUnsupportedType, str)
		}
	case KeyWorkers:
		if n, _ := value.(int); n < 1 {
			return fmt.Errorf("%w: %s must be at least 1", domain.ErrInvalidInput, key)
		}
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return slices.Clone(defaultVal)
}
