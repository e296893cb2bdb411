package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent corpus and content failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown tokenizer, filter or store type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotImplemented indicates a service was built without a required dependency.
	ErrNotImplemented = errors.New("not implemented")

	// Catalog and policy errors. Both are fatal at construction time.

	// ErrCatalogFormat indicates the metadata catalog could not be parsed
	// or is structurally invalid (ambiguous dialect, missing columns,
	// rows without a document identity).
	ErrCatalogFormat = errors.New("catalog format error")

	// ErrPolicy indicates a contradictory resolution policy.
	ErrPolicy = errors.New("policy error")

	// Record errors. Surfaced per file.

	// ErrRecordNotFound indicates a file identifier has no backing record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordFormat indicates a record violates the parse schema.
	ErrRecordFormat = errors.New("record format error")

	// ErrNoSentenceTokenizer indicates a sentence or paragraph query was
	// made without a sentence tokenizer configured.
	ErrNoSentenceTokenizer = errors.New("no sentence tokenizer configured")
)

// FileError ties a per-file failure to the file that caused it.
// Batch operations report these instead of aborting.
type FileError struct {
	FileID string
	Err    error
}

// Error implements error.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.FileID, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
