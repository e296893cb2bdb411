package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

var (
	preferA  = domain.ResolutionPolicy{PreferKindA: true}
	preferB  = domain.ResolutionPolicy{PreferKindB: true}
	preferAB = domain.ResolutionPolicy{PreferKindA: true, PreferKindB: true}
	neither  = domain.ResolutionPolicy{}
	allKinds = domain.ResolutionPolicy{OnNeither: domain.NeitherIncludeAll}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		agg      Aggregate
		policy   domain.ResolutionPolicy
		want     []string
		decision Decision
	}{
		{"no parses", Aggregate{}, preferA, nil, DecisionNone},
		{"a only ignores preference", Aggregate{HasKindA: true, KindAValue: "a1.json; a2.json"}, preferB,
			[]string{"a1.json", "a2.json"}, DecisionKindAOnly},
		{"b only ignores preference", Aggregate{HasKindB: true, KindBValue: "b1.json"}, preferA,
			[]string{"b1.json"}, DecisionKindBOnly},
		{"both prefer a", Aggregate{true, true, "a1.json", "b1.json"}, preferA,
			[]string{"a1.json"}, DecisionPreferKindA},
		{"both prefer b", Aggregate{true, true, "a1.json", "b1.json"}, preferB,
			[]string{"b1.json"}, DecisionPreferKindB},
		{"both preferences true picks a", Aggregate{true, true, "a1.json", "b1.json"}, preferAB,
			[]string{"a1.json"}, DecisionPreferKindA},
		{"neither preferred excludes", Aggregate{true, true, "a1.json", "b1.json"}, neither,
			nil, DecisionBothExcluded},
		{"neither preferred include all", Aggregate{true, true, "a1.json; a2.json", "b1.json"}, allKinds,
			[]string{"a1.json", "a2.json", "b1.json"}, DecisionBothIncluded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, decision := Decide(tt.agg, tt.policy)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.decision, decision)
		})
	}
}

func TestAggregateRows(t *testing.T) {
	rows := []domain.CatalogRow{
		{DocUID: "u", KindA: "a1.json"},
		{DocUID: "u", KindB: "b1.json"},
		{DocUID: "u", KindA: "a2.json"},
		{DocUID: "u"},
	}

	agg := AggregateRows(rows)

	assert.Equal(t, Aggregate{HasKindA: true, HasKindB: true, KindAValue: "a2.json", KindBValue: "b1.json"}, agg)
}

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][3]string
		policy domain.ResolutionPolicy
		want   []string
	}{
		{
			name:   "fragments of a single identity",
			rows:   [][3]string{{"u1", "a1.json; a2.json", ""}},
			policy: preferA,
			want:   []string{"a1.json", "a2.json"},
		},
		{
			name:   "both kinds, nothing preferred",
			rows:   [][3]string{{"u1", "a1.json", "b1.json"}},
			policy: neither,
			want:   []string{},
		},
		{
			name:   "kinds split across rows are aggregated",
			rows:   [][3]string{{"u1", "a1.json", ""}, {"u1", "", "b1.json"}},
			policy: preferA,
			want:   []string{"a1.json"},
		},
		{
			name:   "kinds split across rows prefer b",
			rows:   [][3]string{{"u1", "a1.json", ""}, {"u1", "", "b1.json"}},
			policy: preferB,
			want:   []string{"b1.json"},
		},
		{
			name:   "last non-empty kind-A value wins",
			rows:   [][3]string{{"u1", "a1.json", ""}, {"u1", "a2.json", ""}},
			policy: preferA,
			want:   []string{"a2.json"},
		},
		{
			name:   "shared files are de-duplicated",
			rows:   [][3]string{{"u1", "x.json", ""}, {"u2", "x.json", ""}, {"u3", "", "x.json"}},
			policy: preferA,
			want:   []string{"x.json"},
		},
		{
			name:   "empty fragments are skipped",
			rows:   [][3]string{{"u1", "a2.json; ; a1.json; ", ""}},
			policy: preferA,
			want:   []string{"a1.json", "a2.json"},
		},
		{
			name:   "identities without parses contribute nothing",
			rows:   [][3]string{{"u1", "", ""}, {"u2", "", "b.json"}},
			policy: preferA,
			want:   []string{"b.json"},
		},
		{
			name:   "output is sorted",
			rows:   [][3]string{{"u1", "z.json", ""}, {"u2", "", "m.json"}, {"u3", "a.json", ""}},
			policy: preferA,
			want:   []string{"a.json", "m.json", "z.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(catalogOf(t, tt.rows...), tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.IDs())
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	catalog := catalogOf(t,
		[3]string{"u2", "c.json; a.json", ""},
		[3]string{"u1", "", "b.json"},
		[3]string{"u2", "", "d.json"},
	)

	first, err := Resolve(catalog, preferB)
	require.NoError(t, err)
	second, err := Resolve(catalog, preferB)
	require.NoError(t, err)

	assert.Equal(t, first.IDs(), second.IDs())
	assert.Equal(t, []string{"b.json", "d.json"}, first.IDs())
}

func TestResolve_InvalidPolicy(t *testing.T) {
	_, err := Resolve(catalogOf(t), domain.ResolutionPolicy{OnNeither: "coin_flip"})

	assert.ErrorIs(t, err, domain.ErrPolicy)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	set, err := Resolve(catalogOf(t), preferA)

	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestBuildMetadataIndex(t *testing.T) {
	catalog := catalogOf(t,
		[3]string{"u1", "a1.json; a2.json", "b1.json"},
		[3]string{"u2", "a2.json", ""},
	)

	idx := BuildMetadataIndex(catalog)

	require.Len(t, idx.Lookup("a1.json"), 1)
	assert.Equal(t, "u1", idx.Lookup("a1.json")[0].DocUID)
	require.Len(t, idx.Lookup("a2.json"), 2)
	assert.Equal(t, "u2", idx.Lookup("a2.json")[1].DocUID)
	assert.Equal(t, "u1", idx.Lookup("b1.json")[0].DocUID)
	assert.Empty(t, idx.Lookup("a1.json; a2.json"))
	assert.NotNil(t, idx.Lookup("unknown.json"))
}
