package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/catalog/csv"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/config/file"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/records/corpusfs"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/artifactfs"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/paperstream/internal/adapters/driven/tokenizer"
	"github.com/custodia-labs/paperstream/internal/adapters/driving/cli"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/core/services"
	"github.com/custodia-labs/paperstream/internal/logger"
	"github.com/custodia-labs/paperstream/internal/tokenfilters"
)

// Ensure app implements the opener.
var _ cli.Opener = (*app)(nil)

// app wires driven adapters into services.
type app struct {
	configDir string
	settings  driving.SettingsService
}

// setup opens the config store and returns the settings service and opener.
func setup(configDir string) (driving.SettingsService, cli.Opener, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open config: %w", err)
	}
	logger.Debug("config: %s", store.Path())

	settings := services.NewSettingsService(store)
	return settings, &app{configDir: configDir, settings: settings}, nil
}

// OpenCorpus opens the corpus described by cs.
func (a *app) OpenCorpus(ctx context.Context, cs domain.CorpusSettings) (driving.CorpusService, error) {
	return a.corpus(ctx, cs)
}

// OpenPrecompute opens the corpus, the token filter pipeline and the
// artifact store for a precompute run.
func (a *app) OpenPrecompute(
	ctx context.Context,
	cs domain.CorpusSettings,
	ps domain.PrecomputeSettings,
) (driving.PrecomputeService, io.Closer, error) {
	corpus, err := a.corpus(ctx, cs)
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := tokenfilters.Build(tokenfilters.DefaultRegistry(), a.settings.Pipeline())
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("token filters: %v", pipeline.Names())

	store, closer, err := a.artifactStore(ps)
	if err != nil {
		return nil, nil, err
	}
	return services.NewPrecomputeService(corpus, store, pipeline, ps), closer, nil
}

func (a *app) corpus(ctx context.Context, cs domain.CorpusSettings) (*services.CorpusService, error) {
	records, err := corpusfs.New(cs.Root)
	if err != nil {
		return nil, err
	}
	source, err := corpusfs.NewCatalogSource(cs.Root, cs.Metadata)
	if err != nil {
		return nil, err
	}
	word, err := tokenizer.NewWord(cs.WordTokenizer)
	if err != nil {
		return nil, err
	}
	sent, err := tokenizer.NewSentence(cs.SentenceTokenizer)
	if err != nil {
		return nil, err
	}
	logger.Debug("corpus root: %s", records.Root())

	return services.NewCorpusService(ctx, source, csv.NewLoader(), records, services.CorpusOptions{
		Columns:           cs.Columns,
		Content:           cs.Content,
		Policy:            cs.Policy,
		WordTokenizer:     word,
		SentenceTokenizer: sent,
		ParseDirs:         cs.ParseDirs,
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// artifactStore opens the configured artifact store. An empty location
// means <config dir>/artifacts.
func (a *app) artifactStore(ps domain.PrecomputeSettings) (driven.ArtifactStore, io.Closer, error) {
	out := ps.Out
	if out == "" {
		out = filepath.Join(a.configDir, "artifacts")
	}

	switch ps.Store {
	case domain.ArtifactStoreSQLite, "":
		store, err := sqlite.NewStore(out)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open artifact database: %w", err)
		}
		logger.Debug("artifacts: %s", store.Path())
		return store, store, nil
	case domain.ArtifactStoreDir:
		store, err := artifactfs.NewStore(out)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open artifact directory: %w", err)
		}
		logger.Debug("artifacts: %s", store.Base())
		return store, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: artifact store %q", domain.ErrUnsupportedType, ps.Store)
	}
}
