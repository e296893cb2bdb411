package driven

import "context"

// RecordStore reads physical parse files. File identifiers are paths
// relative to the corpus root, such as "document_parses/pmc_json/PMC1.xml.json".
// Implementations must be safe for concurrent use.
type RecordStore interface {
	// Read returns the raw record bytes.
	// Returns domain.ErrRecordNotFound if no record backs the identifier.
	Read(ctx context.Context, fileID string) ([]byte, error)

	// List returns the file identifiers directly under dir.
	List(ctx context.Context, dir string) ([]string, error)
}
