package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/paperstream/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
	"github.com/custodia-labs/paperstream/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// DatabaseName is the file name of the artifact database.
const DatabaseName = "artifacts.db"

// Store is a SQLite-backed artifact store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.paperstream/artifacts.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".paperstream", "artifacts")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	// WAL lets readers proceed while precompute workers write.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or replaces the artifact for (Kind, FileID).
func (s *Store) Save(ctx context.Context, artifact *domain.Artifact) error {
	if artifact.FileID == "" || !artifact.Kind.IsValid() {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (kind, file_id, payload, run_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, file_id) DO UPDATE SET
			payload = excluded.payload,
			run_id = excluded.run_id,
			created_at = excluded.created_at
	`, string(artifact.Kind), artifact.FileID, []byte(artifact.Payload), artifact.RunID, artifact.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}
	return nil
}

// Get retrieves an artifact by kind and file id.
func (s *Store) Get(ctx context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT payload, run_id, created_at
		FROM artifacts WHERE kind = ? AND file_id = ?
	`, string(kind), fileID)

	artifact := domain.Artifact{FileID: fileID, Kind: kind}
	var payload []byte
	if err := row.Scan(&payload, &artifact.RunID, &artifact.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning artifact: %w", err)
	}
	artifact.Payload = payload
	return &artifact, nil
}

// List returns the file ids with an artifact of kind, sorted.
func (s *Store) List(ctx context.Context, kind domain.ArtifactKind) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT file_id FROM artifacts WHERE kind = ? ORDER BY file_id", string(kind))
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	defer rows.Close()

	var ids []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning artifact id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifacts: %w", err)
	}
	return ids, nil
}

// migrate applies every NNN_*.up.sql newer than the recorded schema
// version. Each migration runs in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}
	for _, m := range pending {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", m.name, err)
		}
		if err := s.apply(m.name, string(script)); err != nil {
			return err
		}
		logger.Debug("sqlite: applied migration %s", m.name)
	}
	return nil
}

func (s *Store) apply(name, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting migration %s: %w", name, err)
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("executing migration %s: %w", name, err)
	}
	return tx.Commit()
}

type migration struct {
	version int
	name    string
}

// pendingMigrations lists up migrations above current, ordered by version.
func pendingMigrations(fsys fs.FS, current int) ([]migration, error) {
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("listing migrations: %w", err)
	}
	var pending []migration
	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		pending = append(pending, migration{version: version, name: name})
	}
	slices.SortFunc(pending, func(a, b migration) int { return a.version - b.version })
	return pending, nil
}
