package driven

import (
	"context"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// ArtifactStore persists precomputed per-file artifacts.
// Implementations must be safe for concurrent use.
type ArtifactStore interface {
	// Save stores or replaces the artifact for (Kind, FileID).
	Save(ctx context.Context, artifact *domain.Artifact) error

	// Get retrieves an artifact. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error)

	// List returns the file identifiers that have an artifact of kind, sorted.
	List(ctx context.Context, kind domain.ArtifactKind) ([]string, error)
}
