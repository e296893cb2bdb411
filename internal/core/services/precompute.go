package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// Ensure PrecomputeService implements the interface.
var _ driving.PrecomputeService = (*PrecomputeService)(nil)

// PrecomputeService derives per-file artifacts in parallel. Files are
// independent, so each worker decodes and tokenizes its own file.
type PrecomputeService struct {
	corpus   *CorpusService
	store    driven.ArtifactStore
	filters  driven.TokenFilterPipeline
	defaults domain.PrecomputeSettings
	now      func() time.Time
}

// NewPrecomputeService creates a precompute service.
// filters may be nil when lemmas are never requested.
func NewPrecomputeService(
	corpus *CorpusService,
	store driven.ArtifactStore,
	filters driven.TokenFilterPipeline,
	defaults domain.PrecomputeSettings,
) *PrecomputeService {
	return &PrecomputeService{
		corpus:   corpus,
		store:    store,
		filters:  filters,
		defaults: defaults,
		now:      time.Now,
	}
}

// Run computes the requested artifacts for every selected file.
func (s *PrecomputeService) Run(
	ctx context.Context,
	sel domain.Selection,
	opts driving.PrecomputeOptions,
) (*domain.PrecomputeReport, error) {
	if s.corpus == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	kinds, err := s.checkKinds(opts.Kinds)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = s.defaults.Workers
	}
	if workers <= 0 {
		workers = 1
	}

	ids := sel.Resolve(s.corpus.files)
	report := &domain.PrecomputeReport{
		RunID:   uuid.NewString(),
		Files:   len(ids),
		Started: s.now(),
	}
	logger.Section("Precompute")
	logger.Info("run %s: %d files, kinds %s, %d workers",
		report.RunID, len(ids), joinKinds(kinds), workers)

	var (
		mu        sync.Mutex
		done      atomic.Int64
		artifacts atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			computed, err := s.compute(gctx, id, kinds, report.RunID)
			if err != nil {
				logger.Warn("%s: %v", id, err)
				mu.Lock()
				report.Failures = append(report.Failures, domain.PrecomputeFailure{FileID: id, Err: err})
				mu.Unlock()
			}
			for _, a := range computed {
				if err := s.store.Save(gctx, a); err != nil {
					return fmt.Errorf("failed to save %s artifact for %s: %w", a.Kind, id, err)
				}
				artifacts.Add(1)
			}
			logger.Progress("File", int(done.Add(1)), len(ids), opts.ProgressEvery)
			return nil
		})
	}
	err = g.Wait()

	slices.SortFunc(report.Failures, func(a, b domain.PrecomputeFailure) int {
		return strings.Compare(a.FileID, b.FileID)
	})
	report.Artifacts = int(artifacts.Load())
	report.Finished = s.now()
	if err != nil {
		return report, err
	}
	logger.Info("run %s: %d artifacts, %d failures", report.RunID, report.Artifacts, len(report.Failures))
	return report, nil
}

// Get reads back a stored artifact.
func (s *PrecomputeService) Get(ctx context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown artifact kind %q", domain.ErrInvalidInput, kind)
	}
	return s.store.Get(ctx, kind, fileID)
}

func (s *PrecomputeService) checkKinds(kinds []domain.ArtifactKind) ([]domain.ArtifactKind, error) {
	if len(kinds) == 0 {
		kinds = domain.AllArtifactKinds()
	}
	out := make([]domain.ArtifactKind, 0, len(kinds))
	for _, k := range kinds {
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: unknown artifact kind %q", domain.ErrInvalidInput, k)
		}
		if k.NeedsSentences() {
			if err := s.corpus.tokens.RequireSentences(); err != nil {
				return nil, err
			}
		}
		if k == domain.ArtifactLemmas && s.filters == nil {
			return nil, fmt.Errorf("%w: lemmas need a token filter pipeline", domain.ErrInvalidInput)
		}
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out, nil
}

// compute builds every artifact of one file. A file either yields all of
// its artifacts or none.
func (s *PrecomputeService) compute(
	ctx context.Context,
	fileID string,
	kinds []domain.ArtifactKind,
	runID string,
) ([]*domain.Artifact, error) {
	var (
		rec *domain.Record
		doc *domain.DecodedDocument
		err error
	)
	if slices.ContainsFunc(kinds, needsRecord) {
		rec, err = s.corpus.decoder.Load(ctx, fileID)
		if err != nil {
			return nil, err
		}
	}
	if slices.ContainsFunc(kinds, needsText) {
		doc, err = s.corpus.decoder.Extract(fileID, rec, s.corpus.content)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*domain.Artifact, 0, len(kinds))
	for _, kind := range kinds {
		var value any
		switch kind {
		case domain.ArtifactWords:
			value = nonNil(s.corpus.tokens.Words(doc))
		case domain.ArtifactSentences:
			value = nonNil(s.corpus.tokens.Sentences(doc))
		case domain.ArtifactLemmas:
			sentences := s.corpus.tokens.Sentences(doc)
			lemmas := make([][]string, len(sentences))
			for i, sentence := range sentences {
				lemmas[i] = nonNil(s.filters.Apply(sentence))
			}
			value = lemmas
		case domain.ArtifactCitations:
			value = bibEntries(rec)
		case domain.ArtifactMetadata:
			value = s.corpus.index.Lookup(fileID)
		}

		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", kind, err)
		}
		out = append(out, &domain.Artifact{
			FileID:    fileID,
			Kind:      kind,
			Payload:   payload,
			RunID:     runID,
			CreatedAt: s.now(),
		})
	}
	return out, nil
}

func needsRecord(k domain.ArtifactKind) bool {
	return k != domain.ArtifactMetadata
}

func needsText(k domain.ArtifactKind) bool {
	return k == domain.ArtifactWords || k == domain.ArtifactSentences || k == domain.ArtifactLemmas
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func joinKinds(kinds []domain.ArtifactKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}
