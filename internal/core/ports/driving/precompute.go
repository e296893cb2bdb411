package driving

import (
	"context"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// PrecomputeOptions configures one precompute run.
type PrecomputeOptions struct {
	// Kinds lists the artifacts to compute. Empty means all kinds.
	Kinds []domain.ArtifactKind

	// Workers bounds concurrent files. Zero uses the configured default.
	Workers int

	// ProgressEvery logs progress every N files. Zero disables it.
	ProgressEvery int
}

// PrecomputeService derives per-file artifacts and stores them.
type PrecomputeService interface {
	// Run computes artifacts for the selection. Per-file failures are
	// collected in the report; only cancellation or store setup errors
	// abort the run.
	Run(ctx context.Context, sel domain.Selection, opts PrecomputeOptions) (*domain.PrecomputeReport, error)

	// Get reads back a stored artifact.
	Get(ctx context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error)
}
