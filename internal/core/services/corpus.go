package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/core/ports/driving"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusService = (*CorpusService)(nil)

// CorpusOptions configures a corpus engine.
type CorpusOptions struct {
	Columns           domain.Columns
	Content           domain.ContentFlags
	Policy            domain.ResolutionPolicy
	WordTokenizer     driven.WordTokenizer
	SentenceTokenizer driven.SentenceTokenizer

	// ParseDirs are counted by Statistics.
	ParseDirs []string
}

// DefaultCorpusOptions returns CORD-19 columns, full content and a
// kind-A preference. Tokenizers must still be supplied.
func DefaultCorpusOptions() CorpusOptions {
	s := domain.DefaultCorpusSettings()
	return CorpusOptions{
		Columns:   s.Columns,
		Content:   s.Content,
		Policy:    s.Policy,
		ParseDirs: s.ParseDirs,
	}
}

// CorpusService is the resolution and streaming engine for one corpus root.
// The catalog, canonical file set and metadata index are built once and
// are read-only afterwards.
type CorpusService struct {
	catalog  *domain.Catalog
	files    domain.CanonicalFileSet
	index    MetadataIndex
	records  driven.RecordStore
	decoder  *Decoder
	tokens   *Tokenization
	view     *StreamingView
	content  domain.ContentFlags
	parseDir []string
}

// NewCorpusService loads the catalog, resolves the canonical file set and
// prepares the streaming view. Catalog and policy errors are fatal here.
func NewCorpusService(
	ctx context.Context,
	source driven.CatalogSource,
	loader driven.CatalogLoader,
	records driven.RecordStore,
	opts CorpusOptions,
) (*CorpusService, error) {
	if source == nil || loader == nil || records == nil {
		return nil, fmt.Errorf("%w: catalog source, loader and record store are required", domain.ErrInvalidInput)
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, err
	}
	tokens, err := NewTokenization(opts.WordTokenizer, opts.SentenceTokenizer)
	if err != nil {
		return nil, err
	}

	logger.Section("Catalog")
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", source.Location(), err)
	}
	defer rc.Close()

	catalog, err := loader.Load(ctx, rc, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", source.Location(), err)
	}
	logger.Debug("catalog %s: %d rows, %d identities", source.Location(), catalog.RowCount(), catalog.Len())

	logger.Section("Resolve")
	files, err := Resolve(catalog, opts.Policy)
	if err != nil {
		return nil, err
	}

	decoder := NewDecoder(records)
	return &CorpusService{
		catalog:  catalog,
		files:    files,
		index:    BuildMetadataIndex(catalog),
		records:  records,
		decoder:  decoder,
		tokens:   tokens,
		view:     NewStreamingView(decoder, tokens, opts.Content),
		content:  opts.Content,
		parseDir: slices.Clone(opts.ParseDirs),
	}, nil
}

// FileIDs returns the canonical file set.
func (s *CorpusService) FileIDs() []string {
	return s.files.IDs()
}

// Contains reports canonical set membership.
func (s *CorpusService) Contains(fileID string) bool {
	return s.files.Contains(fileID)
}

// Documents yields decoded documents.
func (s *CorpusService) Documents(ctx context.Context, sel domain.Selection) iter.Seq2[*domain.DecodedDocument, error] {
	return s.view.Documents(ctx, sel.Resolve(s.files))
}

// Raw concatenates the extracted text of every selected file.
func (s *CorpusService) Raw(ctx context.Context, sel domain.Selection) (string, error) {
	var b strings.Builder
	for doc, err := range s.Documents(ctx, sel) {
		if err != nil {
			return "", err
		}
		b.WriteString(doc.Text())
	}
	return b.String(), nil
}

// Words yields word tokens.
func (s *CorpusService) Words(ctx context.Context, sel domain.Selection) iter.Seq2[string, error] {
	return s.view.Words(ctx, sel.Resolve(s.files))
}

// Sentences yields sentences.
func (s *CorpusService) Sentences(ctx context.Context, sel domain.Selection) (iter.Seq2[[]string, error], error) {
	return s.view.Sentences(ctx, sel.Resolve(s.files))
}

// Paragraphs yields paragraphs.
func (s *CorpusService) Paragraphs(ctx context.Context, sel domain.Selection) (iter.Seq2[[][]string, error], error) {
	return s.view.Paragraphs(ctx, sel.Resolve(s.files))
}

// Metadata returns catalog rows per selected file.
func (s *CorpusService) Metadata(sel domain.Selection) map[string][]domain.CatalogRow {
	ids := sel.Resolve(s.files)
	out := make(map[string][]domain.CatalogRow, len(ids))
	for _, id := range ids {
		out[id] = slices.Clone(s.index.Lookup(id))
	}
	return out
}

// Catalog returns the frozen catalog.
func (s *CorpusService) Catalog() *domain.Catalog {
	return s.catalog
}

// Citations reads bib_entries for every selected file.
func (s *CorpusService) Citations(ctx context.Context, sel domain.Selection) (map[string]map[string]json.RawMessage, error) {
	ids := sel.Resolve(s.files)
	out := make(map[string]map[string]json.RawMessage, len(ids))
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		entries, err := s.decoder.Citations(ctx, id)
		if err != nil {
			errs = append(errs, &domain.FileError{FileID: id, Err: err})
			continue
		}
		out[id] = entries
	}
	return out, errors.Join(errs...)
}

// Statistics counts catalog rows and the files in each parse directory.
func (s *CorpusService) Statistics(ctx context.Context) (*domain.CatalogStats, error) {
	stats := &domain.CatalogStats{
		UniqueIdentities: s.catalog.Len(),
		CanonicalFiles:   s.files.Len(),
		ParseDirs:        make(map[string]int, len(s.parseDir)),
	}
	for _, rows := range s.catalog.All() {
		for _, row := range rows {
			stats.AddRow(row)
		}
	}
	for _, dir := range s.parseDir {
		files, err := s.records.List(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		stats.ParseDirs[dir] = len(files)
	}
	logger.Debug("statistics: %d rows, parse dirs %v", stats.Rows, slices.Sorted(maps.Keys(stats.ParseDirs)))
	return stats, nil
}
