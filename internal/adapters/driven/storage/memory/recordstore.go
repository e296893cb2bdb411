package memory

import (
	"context"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	reads   map[string]int
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string][]byte),
		reads:   make(map[string]int),
	}
}

// Put stores raw record bytes under a file identifier.
func (s *RecordStore) Put(fileID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[fileID] = slices.Clone(data)
}

// PutString stores a record given as a string.
func (s *RecordStore) PutString(fileID, data string) {
	s.Put(fileID, []byte(data))
}

// Read returns the raw record bytes.
func (s *RecordStore) Read(_ context.Context, fileID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.records[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, fileID)
	}
	s.reads[fileID]++
	return slices.Clone(data), nil
}

// Reads returns how many times a record was read.
func (s *RecordStore) Reads(fileID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads[fileID]
}

// List returns the identifiers directly under dir, sorted.
func (s *RecordStore) List(_ context.Context, dir string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dir = strings.TrimSuffix(dir, "/")
	var out []string
	for _, id := range slices.Sorted(maps.Keys(s.records)) {
		if path.Dir(id) == dir {
			out = append(out, id)
		}
	}
	return out, nil
}

// Ensure CatalogSource implements the interface.
var _ driven.CatalogSource = (*CatalogSource)(nil)

// CatalogSource serves catalog content from memory.
type CatalogSource struct {
	content string
}

// NewCatalogSource creates a catalog source over a string.
func NewCatalogSource(content string) *CatalogSource {
	return &CatalogSource{content: content}
}

// Open returns a reader over the content.
func (s *CatalogSource) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.content)), nil
}

// Location returns a fixed description.
func (s *CatalogSource) Location() string {
	return ":memory:"
}
