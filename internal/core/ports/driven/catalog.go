package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// CatalogSource opens the raw metadata catalog.
type CatalogSource interface {
	// Open returns a reader over the catalog content. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)

	// Location describes where the catalog lives, for messages.
	Location() string
}

// CatalogLoader parses catalog content into a frozen catalog.
// Dialect detection and header validation failures are domain.ErrCatalogFormat.
type CatalogLoader interface {
	Load(ctx context.Context, r io.Reader, columns domain.Columns) (*domain.Catalog, error)
}
