package domain

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Default column names of the CORD-19 style metadata catalog.
const (
	DefaultIDColumn    = "cord_uid"
	DefaultKindAColumn = "pdf_json_files"
	DefaultKindBColumn = "pmc_json_files"
)

// KindASeparator joins multiple kind-A fragment files in one catalog cell.
const KindASeparator = "; "

// Columns names the catalog columns the resolver depends on.
type Columns struct {
	// ID is the logical document identity column.
	ID string

	// KindA holds zero or more kind-A parse files joined by KindASeparator.
	KindA string

	// KindB holds zero or one kind-B parse file.
	KindB string
}

// DefaultColumns returns the CORD-19 column names.
func DefaultColumns() Columns {
	return Columns{
		ID:    DefaultIDColumn,
		KindA: DefaultKindAColumn,
		KindB: DefaultKindBColumn,
	}
}

// Required returns the column names that must be present in a catalog header.
func (c Columns) Required() []string {
	return []string{c.ID, c.KindA, c.KindB}
}

// CatalogRow is one metadata record.
// Empty KindA or KindB means "no parse of that kind".
type CatalogRow struct {
	// DocUID is the logical document identity.
	DocUID string `json:"doc_uid"`

	// KindA is the raw kind-A cell, possibly several files joined by "; ".
	KindA string `json:"kind_a"`

	// KindB is the raw kind-B cell.
	KindB string `json:"kind_b"`

	// Fields holds every column of the row verbatim, keyed by header name.
	// Publish time, authors, journal and the like are never interpreted.
	Fields map[string]string `json:"fields"`

	// Line is the 1-based record number in the source, header excluded.
	Line int `json:"line"`
}

// HasKindA reports whether the row references any kind-A parse.
func (r CatalogRow) HasKindA() bool {
	return r.KindA != ""
}

// HasKindB reports whether the row references a kind-B parse.
func (r CatalogRow) HasKindB() bool {
	return r.KindB != ""
}

// KindAFiles splits the kind-A cell into its fragment files.
// Empty fragments, such as a trailing separator, are skipped.
func (r CatalogRow) KindAFiles() []string {
	return SplitKindA(r.KindA)
}

// SplitKindA splits a kind-A cell on KindASeparator, dropping empty fragments.
func SplitKindA(value string) []string {
	if value == "" {
		return nil
	}
	var files []string
	for _, part := range strings.Split(value, KindASeparator) {
		if part != "" {
			files = append(files, part)
		}
	}
	return files
}

// Catalog is an ordered multimap from document identity to catalog rows.
// It is built once by a CatalogBuilder and never mutated afterwards, so
// concurrent reads need no locking.
type Catalog struct {
	header   []string
	columns  Columns
	order    []string
	rows     map[string][]CatalogRow
	rowCount int
}

// Header returns the catalog header in source order.
func (c *Catalog) Header() []string {
	return slices.Clone(c.header)
}

// Columns returns the column names used to build the catalog.
func (c *Catalog) Columns() Columns {
	return c.columns
}

// Len returns the number of distinct document identities.
func (c *Catalog) Len() int {
	return len(c.order)
}

// RowCount returns the total number of rows across all identities.
func (c *Catalog) RowCount() int {
	return c.rowCount
}

// Identities returns document identities in first-seen order.
func (c *Catalog) Identities() []string {
	return slices.Clone(c.order)
}

// Rows returns the rows of one identity in source order.
// The second result is false when the identity is unknown.
func (c *Catalog) Rows(docUID string) ([]CatalogRow, bool) {
	rows, ok := c.rows[docUID]
	if !ok {
		return nil, false
	}
	return cloneRows(rows), true
}

// All iterates identities in first-seen order with their rows.
func (c *Catalog) All() iter.Seq2[string, []CatalogRow] {
	return func(yield func(string, []CatalogRow) bool) {
		for _, uid := range c.order {
			if !yield(uid, cloneRows(c.rows[uid])) {
				return
			}
		}
	}
}

func cloneRows(rows []CatalogRow) []CatalogRow {
	out := make([]CatalogRow, len(rows))
	for i, row := range rows {
		row.Fields = maps.Clone(row.Fields)
		out[i] = row
	}
	return out
}

// CatalogBuilder accumulates rows and freezes them into a Catalog.
type CatalogBuilder struct {
	catalog *Catalog
}

// NewCatalogBuilder starts a catalog with the given header and columns.
// Missing required columns are an ErrCatalogFormat.
func NewCatalogBuilder(header []string, columns Columns) (*CatalogBuilder, error) {
	for _, name := range columns.Required() {
		if !slices.Contains(header, name) {
			return nil, fmt.Errorf("%w: header is missing column %q", ErrCatalogFormat, name)
		}
	}
	return &CatalogBuilder{
		catalog: &Catalog{
			header:  slices.Clone(header),
			columns: columns,
			rows:    make(map[string][]CatalogRow),
		},
	}, nil
}

// Add appends a row under its identity. A row without an identity is an
// ErrCatalogFormat. Adding after Freeze panics.
func (b *CatalogBuilder) Add(row CatalogRow) error {
	if b.catalog == nil {
		panic("domain: CatalogBuilder used after Freeze")
	}
	if row.DocUID == "" {
		return fmt.Errorf("%w: row %d has an empty %s", ErrCatalogFormat, row.Line, b.catalog.columns.ID)
	}
	c := b.catalog
	if _, seen := c.rows[row.DocUID]; !seen {
		c.order = append(c.order, row.DocUID)
	}
	c.rows[row.DocUID] = append(c.rows[row.DocUID], row)
	c.rowCount++
	return nil
}

// Freeze returns the finished catalog. The builder cannot be reused.
func (b *CatalogBuilder) Freeze() *Catalog {
	c := b.catalog
	b.catalog = nil
	return c
}
