package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactKind_IsValid(t *testing.T) {
	for _, k := range AllArtifactKinds() {
		assert.True(t, k.IsValid(), k)
	}
	assert.False(t, ArtifactKind("embeddings").IsValid())
	assert.False(t, ArtifactKind("").IsValid())
}

func TestArtifactKind_NeedsSentences(t *testing.T) {
	tests := map[ArtifactKind]bool{
		ArtifactSentences: true,
		ArtifactLemmas:    true,
		ArtifactWords:     false,
		ArtifactCitations: false,
		ArtifactMetadata:  false,
	}
	for kind, want := range tests {
		assert.Equal(t, want, kind.NeedsSentences(), kind)
	}
}
