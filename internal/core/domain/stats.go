package domain

// CatalogStats summarises the metadata catalog and the parse directories.
type CatalogStats struct {
	Rows             int
	UniqueIdentities int

	RowsWithKindA int
	RowsWithKindB int
	RowsKindAOnly int
	RowsKindBOnly int
	RowsWithBoth  int
	RowsNeither   int

	// KindAFiles counts kind-A fragments across all rows.
	KindAFiles int

	// CanonicalFiles is the size of the resolved file set.
	CanonicalFiles int

	// ParseDirs maps each configured parse directory to its file count.
	ParseDirs map[string]int
}

// AddRow folds one catalog row into the row counters.
func (s *CatalogStats) AddRow(row CatalogRow) {
	s.Rows++
	hasA, hasB := row.HasKindA(), row.HasKindB()
	switch {
	case hasA && hasB:
		s.RowsWithBoth++
	case hasA:
		s.RowsKindAOnly++
	case hasB:
		s.RowsKindBOnly++
	default:
		s.RowsNeither++
	}
	if hasA {
		s.RowsWithKindA++
		s.KindAFiles += len(row.KindAFiles())
	}
	if hasB {
		s.RowsWithKindB++
	}
}
