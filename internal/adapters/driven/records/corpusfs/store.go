// Package corpusfs reads the metadata catalog and parse files of a corpus
// root through github.com/viant/afs, so the root may be a local directory
// or any URL scheme afs supports.
package corpusfs

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"slices"

	"github.com/viant/afs"
	"github.com/viant/afs/url"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store reads parse files relative to a corpus root.
// afs services are safe for concurrent use.
type Store struct {
	fs   afs.Service
	root string
}

// New creates a record store rooted at location.
func New(location string) (*Store, error) {
	root, err := Normalize(location)
	if err != nil {
		return nil, err
	}
	return &Store{fs: afs.New(), root: root}, nil
}

// Root returns the normalised root URL.
func (s *Store) Root() string {
	return s.root
}

// Read returns the bytes of one parse file.
func (s *Store) Read(ctx context.Context, fileID string) ([]byte, error) {
	URL := url.Join(s.root, fileID)
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", fileID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, fileID)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", fileID, err)
	}
	return data, nil
}

// List returns the files directly under dir, sorted. A missing directory
// has no files.
func (s *Store) List(ctx context.Context, dir string) ([]string, error) {
	URL := url.Join(s.root, dir)
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if !ok {
		return nil, nil
	}
	objects, err := s.fs.List(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var ids []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		ids = append(ids, path.Join(dir, object.Name()))
	}
	slices.Sort(ids)
	return ids, nil
}

// Ensure CatalogSource implements the interface.
var _ driven.CatalogSource = (*CatalogSource)(nil)

// CatalogSource opens the metadata catalog through afs.
type CatalogSource struct {
	fs  afs.Service
	URL string
}

// NewCatalogSource resolves metadata against root. An absolute path or a
// URL with a scheme is used as is.
func NewCatalogSource(root, metadata string) (*CatalogSource, error) {
	location := metadata
	if url.Scheme(metadata, "") == "" && url.IsRelative(metadata) {
		base, err := Normalize(root)
		if err != nil {
			return nil, err
		}
		location = url.Join(base, metadata)
	}
	URL, err := Normalize(location)
	if err != nil {
		return nil, err
	}
	return &CatalogSource{fs: afs.New(), URL: URL}, nil
}

// Open returns a reader over the catalog.
func (c *CatalogSource) Open(ctx context.Context) (io.ReadCloser, error) {
	ok, err := c.fs.Exists(ctx, c.URL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, c.URL)
	}
	return c.fs.OpenURL(ctx, c.URL)
}

// Location returns the catalog URL.
func (c *CatalogSource) Location() string {
	return c.URL
}

// Normalize turns a relative or absolute OS path into a file URL and
// leaves URLs with a scheme untouched.
func Normalize(location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: corpus root is not set", domain.ErrInvalidInput)
	}
	if url.Scheme(location, "") != "" {
		return location, nil
	}
	if url.IsRelative(location) {
		abs, err := filepath.Abs(location)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path for %s: %w", location, err)
		}
		location = abs
	}
	return url.ToFileURL(location), nil
}
