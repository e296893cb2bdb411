package services

import (
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// Aggregate is the per-identity view of all its catalog rows.
// Presence flags are ORed across rows; values come from the last row that
// carries a non-empty cell.
type Aggregate struct {
	HasKindA   bool
	HasKindB   bool
	KindAValue string
	KindBValue string
}

// AggregateRows folds the rows of one identity.
func AggregateRows(rows []domain.CatalogRow) Aggregate {
	var agg Aggregate
	for _, row := range rows {
		if row.HasKindA() {
			agg.HasKindA = true
			agg.KindAValue = row.KindA
		}
		if row.HasKindB() {
			agg.HasKindB = true
			agg.KindBValue = row.KindB
		}
	}
	return agg
}

// Decision records how an identity was resolved.
type Decision string

// Resolution outcomes, one per identity.
const (
	DecisionNone         Decision = "none"
	DecisionKindAOnly    Decision = "a_only"
	DecisionKindBOnly    Decision = "b_only"
	DecisionPreferKindA  Decision = "both_prefer_a"
	DecisionPreferKindB  Decision = "both_prefer_b"
	DecisionBothExcluded Decision = "both_excluded"
	DecisionBothIncluded Decision = "both_included"
)

// Decide returns the files one identity contributes to the canonical set.
func Decide(agg Aggregate, policy domain.ResolutionPolicy) ([]string, Decision) {
	switch {
	case !agg.HasKindA && !agg.HasKindB:
		return nil, DecisionNone
	case agg.HasKindA && !agg.HasKindB:
		return domain.SplitKindA(agg.KindAValue), DecisionKindAOnly
	case !agg.HasKindA && agg.HasKindB:
		return []string{agg.KindBValue}, DecisionKindBOnly
	case policy.PreferKindA:
		return domain.SplitKindA(agg.KindAValue), DecisionPreferKindA
	case policy.PreferKindB:
		return []string{agg.KindBValue}, DecisionPreferKindB
	case policy.Neither() == domain.NeitherIncludeAll:
		files := domain.SplitKindA(agg.KindAValue)
		return append(files, agg.KindBValue), DecisionBothIncluded
	default:
		return nil, DecisionBothExcluded
	}
}

// Resolve applies the policy to every identity of the catalog and returns
// the sorted, de-duplicated canonical file set.
func Resolve(catalog *domain.Catalog, policy domain.ResolutionPolicy) (domain.CanonicalFileSet, error) {
	if err := policy.Validate(); err != nil {
		return domain.CanonicalFileSet{}, err
	}

	counts := make(map[Decision]int)
	var files []string
	for _, rows := range catalog.All() {
		chosen, decision := Decide(AggregateRows(rows), policy)
		counts[decision]++
		files = append(files, chosen...)
	}

	set := domain.NewCanonicalFileSet(files)
	logger.Debug("resolved %d identities to %d files (prefer=%s, on_neither=%s)",
		catalog.Len(), set.Len(), policy.Preference(), policy.Neither())
	for _, d := range []Decision{
		DecisionNone, DecisionKindAOnly, DecisionKindBOnly, DecisionPreferKindA,
		DecisionPreferKindB, DecisionBothExcluded, DecisionBothIncluded,
	} {
		if counts[d] > 0 {
			logger.Debug("  %s: %d", d, counts[d])
		}
	}
	return set, nil
}

// MetadataIndex maps every file referenced by the catalog to the rows
// that reference it. Kind-A cells are indexed per fragment.
type MetadataIndex map[string][]domain.CatalogRow

// BuildMetadataIndex indexes every row of the catalog by file id.
func BuildMetadataIndex(catalog *domain.Catalog) MetadataIndex {
	idx := make(MetadataIndex)
	for _, rows := range catalog.All() {
		for _, row := range rows {
			for _, file := range row.KindAFiles() {
				idx[file] = append(idx[file], row)
			}
			if row.HasKindB() {
				idx[row.KindB] = append(idx[row.KindB], row)
			}
		}
	}
	return idx
}

// Lookup returns the rows for a file, or an empty slice.
func (m MetadataIndex) Lookup(fileID string) []domain.CatalogRow {
	rows := m[fileID]
	if rows == nil {
		return []domain.CatalogRow{}
	}
	return rows
}
