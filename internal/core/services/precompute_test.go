package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/tokenfilters"
)

func newTestPrecompute(t *testing.T, opts CorpusOptions) (*PrecomputeService, *memory.ArtifactStore) {
	t.Helper()
	corpus, _ := newTestCorpus(t, opts)
	pipeline, err := tokenfilters.Build(tokenfilters.DefaultRegistry(), domain.DefaultPipelineConfig())
	require.NoError(t, err)
	store := memory.NewArtifactStore()
	return NewPrecomputeService(corpus, store, pipeline, domain.DefaultPrecomputeSettings()), store
}

func TestPrecomputeService_Run(t *testing.T) {
	svc, store := newTestPrecompute(t, testOptions(t))

	report, err := svc.Run(context.Background(), domain.Many("a1.json", "a2.json", "a3.json"), driving.PrecomputeOptions{})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 10, report.Artifacts)
	assert.Equal(t, 10, store.Len())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "a3.json", report.Failures[0].FileID)
	assert.ErrorIs(t, report.Failures[0].Err, domain.ErrRecordNotFound)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
	assert.False(t, report.Finished.Before(report.Started))
}

func TestPrecomputeService_Run_Payloads(t *testing.T) {
	svc, _ := newTestPrecompute(t, testOptions(t))
	ctx := context.Background()

	report, err := svc.Run(ctx, domain.One("a2.json"), driving.PrecomputeOptions{Workers: 2})
	require.NoError(t, err)
	require.Empty(t, report.Failures)

	words, err := svc.Get(ctx, domain.ArtifactWords, "a2.json")
	require.NoError(t, err)
	assert.Equal(t, report.RunID, words.RunID)
	assert.JSONEq(t, `["Beta","Second","fragment","."]`, string(words.Payload))

	sentences, err := svc.Get(ctx, domain.ArtifactSentences, "a2.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[["Beta"],["Second","fragment","."]]`, string(sentences.Payload))

	lemmas, err := svc.Get(ctx, domain.ArtifactLemmas, "a2.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[["beta"],["second","fragment","."]]`, string(lemmas.Payload))

	citations, err := svc.Get(ctx, domain.ArtifactCitations, "a2.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(citations.Payload))

	meta, err := svc.Get(ctx, domain.ArtifactMetadata, "a2.json")
	require.NoError(t, err)
	var rows []domain.CatalogRow
	require.NoError(t, json.Unmarshal(meta.Payload, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].DocUID)
}

func TestPrecomputeService_Run_MetadataOnlySkipsRecords(t *testing.T) {
	svc, store := newTestPrecompute(t, testOptions(t))

	report, err := svc.Run(context.Background(), domain.All(), driving.PrecomputeOptions{
		Kinds: []domain.ArtifactKind{domain.ArtifactMetadata, domain.ArtifactMetadata},
	})

	require.NoError(t, err)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 5, report.Artifacts)
	ids, err := store.List(context.Background(), domain.ArtifactMetadata)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1.json", "a2.json", "a3.json", "b1.json", "bad.json"}, ids)
}

func TestPrecomputeService_Run_FailuresSorted(t *testing.T) {
	svc, _ := newTestPrecompute(t, testOptions(t))

	report, err := svc.Run(context.Background(), domain.All(), driving.PrecomputeOptions{
		Kinds:   []domain.ArtifactKind{domain.ArtifactWords},
		Workers: 4,
	})

	require.NoError(t, err)
	require.Len(t, report.Failures, 2)
	assert.Equal(t, "a3.json", report.Failures[0].FileID)
	assert.Equal(t, "bad.json", report.Failures[1].FileID)
	assert.ErrorIs(t, report.Failures[1].Err, domain.ErrRecordFormat)
	assert.Equal(t, 3, report.Artifacts)
}

func TestPrecomputeService_Run_InvalidKinds(t *testing.T) {
	svc, _ := newTestPrecompute(t, testOptions(t))

	_, err := svc.Run(context.Background(), domain.All(), driving.PrecomputeOptions{
		Kinds: []domain.ArtifactKind{"embeddings"},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrecomputeService_Run_NoSentenceTokenizer(t *testing.T) {
	opts := testOptions(t)
	opts.SentenceTokenizer = nil
	svc, _ := newTestPrecompute(t, opts)
	ctx := context.Background()

	_, err := svc.Run(ctx, domain.All(), driving.PrecomputeOptions{})
	assert.ErrorIs(t, err, domain.ErrNoSentenceTokenizer)

	_, err = svc.Run(ctx, domain.All(), driving.PrecomputeOptions{
		Kinds: []domain.ArtifactKind{domain.ArtifactLemmas},
	})
	assert.ErrorIs(t, err, domain.ErrNoSentenceTokenizer)

	report, err := svc.Run(ctx, domain.One("b1.json"), driving.PrecomputeOptions{
		Kinds: []domain.ArtifactKind{domain.ArtifactWords, domain.ArtifactCitations},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Artifacts)
}

func TestPrecomputeService_Run_LemmasNeedFilters(t *testing.T) {
	corpus, _ := newTestCorpus(t, testOptions(t))
	svc := NewPrecomputeService(corpus, memory.NewArtifactStore(), nil, domain.DefaultPrecomputeSettings())

	_, err := svc.Run(context.Background(), domain.All(), driving.PrecomputeOptions{
		Kinds: []domain.ArtifactKind{domain.ArtifactLemmas},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrecomputeService_Run_Cancelled(t *testing.T) {
	svc, store := newTestPrecompute(t, testOptions(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, domain.All(), driving.PrecomputeOptions{})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, store.Len())
}

func TestPrecomputeService_NotImplemented(t *testing.T) {
	svc := NewPrecomputeService(nil, nil, nil, domain.PrecomputeSettings{})

	_, err := svc.Run(context.Background(), domain.All(), driving.PrecomputeOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = svc.Get(context.Background(), domain.ArtifactWords, "a1.json")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestPrecomputeService_Get(t *testing.T) {
	svc, _ := newTestPrecompute(t, testOptions(t))

	_, err := svc.Get(context.Background(), "vectors", "a1.json")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Get(context.Background(), domain.ArtifactWords, "a1.json")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
