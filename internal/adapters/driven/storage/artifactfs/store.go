// Package artifactfs stores precomputed artifacts as one JSON file per
// (kind, file id), mirroring the parse tree under <base>/<kind>/. Any
// location github.com/viant/afs can write to may be used as the base.
package artifactfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/custodia-labs/paperstream/internal/adapters/driven/records/corpusfs"
	"github.com/custodia-labs/paperstream/internal/core/domain"
	"github.com/custodia-labs/paperstream/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// envelope is the on-disk form of an artifact.
type envelope struct {
	FileID    string          `json:"file_id"`
	Kind      string          `json:"kind"`
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

// Store writes artifacts below a base URL.
type Store struct {
	fs   afs.Service
	base string
}

// NewStore creates a store rooted at location.
func NewStore(location string) (*Store, error) {
	base, err := corpusfs.Normalize(location)
	if err != nil {
		return nil, err
	}
	return &Store{fs: afs.New(), base: base}, nil
}

// Base returns the normalised base URL.
func (s *Store) Base() string {
	return s.base
}

func (s *Store) artifactURL(kind domain.ArtifactKind, fileID string) string {
	return url.Join(s.base, string(kind), fileID)
}

// Save writes or replaces the artifact file.
func (s *Store) Save(ctx context.Context, artifact *domain.Artifact) error {
	if artifact.FileID == "" || !artifact.Kind.IsValid() {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(envelope{
		FileID:    artifact.FileID,
		Kind:      string(artifact.Kind),
		RunID:     artifact.RunID,
		CreatedAt: artifact.CreatedAt.UTC(),
		Payload:   artifact.Payload,
	})
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}

	URL := s.artifactURL(artifact.Kind, artifact.FileID)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", URL, err)
	}
	return nil
}

// Get reads an artifact file back.
func (s *Store) Get(ctx context.Context, kind domain.ArtifactKind, fileID string) (*domain.Artifact, error) {
	URL := s.artifactURL(kind, fileID)
	ok, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", URL, err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", URL, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", URL, err)
	}
	return &domain.Artifact{
		FileID:    fileID,
		Kind:      kind,
		Payload:   env.Payload,
		RunID:     env.RunID,
		CreatedAt: env.CreatedAt,
	}, nil
}

// List walks <base>/<kind>/ and returns the file ids found, sorted.
func (s *Store) List(ctx context.Context, kind domain.ArtifactKind) ([]string, error) {
	root := url.Join(s.base, string(kind))
	ok, err := s.fs.Exists(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := s.walk(ctx, root, "", &ids); err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *Store) walk(ctx context.Context, dirURL, rel string, ids *[]string) error {
	objects, err := s.fs.List(ctx, dirURL)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dirURL, err)
	}
	for _, object := range objects {
		if object.IsDir() {
			// The listing includes the directory itself.
			if strings.TrimSuffix(url.Path(object.URL()), "/") == strings.TrimSuffix(url.Path(dirURL), "/") {
				continue
			}
			if err := s.walk(ctx, url.Join(dirURL, object.Name()), path.Join(rel, object.Name()), ids); err != nil {
				return err
			}
			continue
		}
		*ids = append(*ids, path.Join(rel, object.Name()))
	}
	return nil
}
