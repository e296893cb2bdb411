package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

type artifactKey struct {
	kind   domain.ArtifactKind
	fileID string
}

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[artifactKey]domain.Artifact
}

// NewArtifactStore creates a new in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: make(map[artifactKey]domain.Artifact),
	}
}

// Save stores or replaces an artifact.
func (s *ArtifactStore) Save(_ context.Context, artifact *domain.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *artifact
	a.Payload = slices.Clone(a.Payload)
	s.artifacts[artifactKey{a.Kind, a.FileID}] = a
	return nil
}

// Get retrieves an artifact.
func (s *ArtifactStore) Get(_ context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[artifactKey{kind, fileID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// List returns the file identifiers with an artifact of kind.
func (s *ArtifactStore) List(_ context.Context, kind domain.ArtifactKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for key := range maps.Keys(s.artifacts) {
		if key.kind == kind {
			out = append(out, key.fileID)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Len returns the number of stored artifacts.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.artifacts)
}
