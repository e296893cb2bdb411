// Package sqlite provides a SQLite-based implementation of driven.ArtifactStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Precomputed artifacts are keyed by
// (kind, file id), so a later precompute run replaces the artifacts of an
// earlier one.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory, applied in order and tracked in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.paperstream/artifacts/artifacts.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode, with a busy timeout for concurrent precompute workers.
package sqlite
