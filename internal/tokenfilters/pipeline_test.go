package tokenfilters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// upperFilter is a simple filter for testing pipeline ordering.
type upperFilter struct{}

func (upperFilter) Name() string { return "upper" }
func (upperFilter) Filter(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = strings.ToUpper(tok)
	}
	return tokens
}

// dropShort removes one-rune tokens.
type dropShort struct{}

func (dropShort) Name() string { return "drop_short" }
func (dropShort) Filter(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if len(tok) > 1 {
			out = append(out, tok)
		}
	}
	return out
}

func TestPipeline_Empty(t *testing.T) {
	p := NewPipeline()

	assert.Equal(t, 0, p.Len())
	assert.Equal(t, []string{"A", "b"}, p.Apply([]string{"A", "b"}))
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := NewPipeline(dropShort{})
	p.Add(upperFilter{})

	got := p.Apply([]string{"a", "virus", ".", "host"})

	assert.Equal(t, []string{"VIRUS", "HOST"}, got)
	assert.Equal(t, []string{"drop_short", "upper"}, p.Names())
}

func TestPipeline_DoesNotModifyInput(t *testing.T) {
	p := NewPipeline(upperFilter{})
	in := []string{"virus"}

	_ = p.Apply(in)

	assert.Equal(t, []string{"virus"}, in)
}

func TestBuild_Defaults(t *testing.T) {
	p, err := Build(DefaultRegistry(), domain.DefaultPipelineConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"lowercase", "stem"}, p.Names())
	assert.Equal(t, []string{"the", "cat", "run"}, p.Apply([]string{"The", "Cats", "Running"}))
}

func TestBuild_FilterConfig(t *testing.T) {
	cfg := domain.PipelineConfig{
		Filters: []string{"stem"},
		FilterConfigs: map[string]map[string]any{
			"stem": {"stem_stopwords": false},
		},
	}

	p, err := Build(DefaultRegistry(), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"having", "cat"}, p.Apply([]string{"having", "cats"}))
}

func TestBuild_UnknownFilter(t *testing.T) {
	_, err := Build(DefaultRegistry(), domain.PipelineConfig{Filters: []string{"lemmatize"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "unknown filter: lemmatize")
}
