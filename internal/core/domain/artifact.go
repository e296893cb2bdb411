package domain

import (
	"encoding/json"
	"time"
)

// ArtifactKind names a precomputed per-file derivative.
type ArtifactKind string

// Available artifact kinds.
const (
	// ArtifactSentences is [][]string: sentences of word tokens.
	ArtifactSentences ArtifactKind = "sentences"

	// ArtifactWords is []string: the word view of the file.
	ArtifactWords ArtifactKind = "words"

	// ArtifactLemmas is [][]string: sentences after the token filter pipeline.
	ArtifactLemmas ArtifactKind = "lemmas"

	// ArtifactCitations is the verbatim bib_entries object.
	ArtifactCitations ArtifactKind = "citations"

	// ArtifactMetadata is []CatalogRow: the catalog rows naming the file.
	ArtifactMetadata ArtifactKind = "metadata"
)

// AllArtifactKinds lists every kind in a stable order.
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{
		ArtifactSentences,
		ArtifactWords,
		ArtifactLemmas,
		ArtifactCitations,
		ArtifactMetadata,
	}
}

// IsValid returns true if the kind is recognised.
func (k ArtifactKind) IsValid() bool {
	switch k {
	case ArtifactSentences, ArtifactWords, ArtifactLemmas, ArtifactCitations, ArtifactMetadata:
		return true
	default:
		return false
	}
}

// NeedsSentences reports whether computing the kind requires a sentence tokenizer.
func (k ArtifactKind) NeedsSentences() bool {
	return k == ArtifactSentences || k == ArtifactLemmas
}

// String returns the string representation.
func (k ArtifactKind) String() string {
	return string(k)
}

// Artifact is one precomputed derivative of one file.
type Artifact struct {
	// FileID is the source file identifier.
	FileID string

	// Kind is what the payload holds.
	Kind ArtifactKind

	// Payload is the JSON encoded value.
	Payload json.RawMessage

	// RunID identifies the precompute run that produced the artifact.
	RunID string

	// CreatedAt is when the artifact was computed.
	CreatedAt time.Time
}

// PrecomputeFailure records a file that could not be processed.
type PrecomputeFailure struct {
	FileID string
	Err    error
}

// PrecomputeReport summarises a precompute run.
type PrecomputeReport struct {
	RunID     string
	Files     int
	Artifacts int
	Failures  []PrecomputeFailure
	Started   time.Time
	Finished  time.Time
}
