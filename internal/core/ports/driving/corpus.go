package driving

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/custodia-labs/paperstream/internal/core/domain"
)

// CorpusService is the query surface over one resolved corpus.
// Every query accepts the same three-way domain.Selection argument.
//
// Streaming queries yield one unit at a time and decode one file at a time.
// Ranging over a returned sequence again re-reads every file. A file that
// fails yields a *domain.FileError in the error position; iteration then
// continues with the next file unless the caller stops.
type CorpusService interface {
	// FileIDs returns the canonical file set in ascending order.
	FileIDs() []string

	// Contains reports whether fileID is in the canonical file set.
	Contains(fileID string) bool

	// Documents yields the decoded documents of the selection.
	Documents(ctx context.Context, sel domain.Selection) iter.Seq2[*domain.DecodedDocument, error]

	// Raw returns the extracted text of the selection as one string.
	// Fails on the first file that cannot be decoded.
	Raw(ctx context.Context, sel domain.Selection) (string, error)

	// Words yields word tokens.
	Words(ctx context.Context, sel domain.Selection) iter.Seq2[string, error]

	// Sentences yields sentences as word lists.
	// Returns domain.ErrNoSentenceTokenizer without a sentence tokenizer.
	Sentences(ctx context.Context, sel domain.Selection) (iter.Seq2[[]string, error], error)

	// Paragraphs yields sections as lists of sentences.
	// Returns domain.ErrNoSentenceTokenizer without a sentence tokenizer.
	Paragraphs(ctx context.Context, sel domain.Selection) (iter.Seq2[[][]string, error], error)

	// Metadata returns the catalog rows naming each selected file.
	// Files without rows map to an empty slice.
	Metadata(sel domain.Selection) map[string][]domain.CatalogRow

	// Catalog returns the full frozen catalog.
	Catalog() *domain.Catalog

	// Citations returns each selected file's bib_entries verbatim.
	// Per-file failures are joined into the error; successful files are
	// still present in the map.
	Citations(ctx context.Context, sel domain.Selection) (map[string]map[string]json.RawMessage, error)

	// Statistics summarises the catalog and the parse directories.
	Statistics(ctx context.Context) (*domain.CatalogStats, error)
}
