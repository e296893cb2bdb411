package domain

import (
	"iter"
	"slices"
	"sort"
)

// CanonicalFileSet is the sorted, deduplicated list of file identifiers that
// represents the corpus. It is immutable once built.
type CanonicalFileSet struct {
	ids []string
}

// NewCanonicalFileSet sorts and deduplicates ids. The input is not modified.
func NewCanonicalFileSet(ids []string) CanonicalFileSet {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return CanonicalFileSet{ids: slices.Compact(sorted)}
}

// Len returns the number of file identifiers.
func (s CanonicalFileSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the identifiers in ascending order.
// An empty set yields an empty, non-nil slice.
func (s CanonicalFileSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// At returns the i-th identifier.
func (s CanonicalFileSet) At(i int) string {
	return s.ids[i]
}

// Contains reports whether id is in the set.
func (s CanonicalFileSet) Contains(id string) bool {
	i := sort.SearchStrings(s.ids, id)
	return i < len(s.ids) && s.ids[i] == id
}

// All iterates identifiers in ascending order.
func (s CanonicalFileSet) All() iter.Seq[string] {
	return slices.Values(s.ids)
}
