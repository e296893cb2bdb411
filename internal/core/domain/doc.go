// Package domain defines the core entities for Paperstream.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CatalogRow: One row of the metadata catalog
//   - Catalog: Frozen ordered multimap from doc_uid to its rows
//   - ResolutionPolicy: Which parse kind wins when a document has both
//   - CanonicalFileSet: The sorted, deduplicated corpus file list
//   - Record: The physical parse file schema
//   - DecodedDocument: Title, abstract and body text of one parse file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
