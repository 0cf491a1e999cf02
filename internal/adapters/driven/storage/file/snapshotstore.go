package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// snapshotDocument is the on-disk JSON layout read by catalog frontends.
type snapshotDocument struct {
	LastUpdated  string           `json:"last_updated"`
	Repositories []repositoryJSON `json:"repositories"`
}

type repositoryJSON struct {
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Description    *string `json:"description"`
	Stars          int     `json:"stars"`
	Language       *string `json:"language"`
	UpdatedAt      string  `json:"updated_at"`
	CursorrulesURL string  `json:"cursorrules_url"`
}

// SnapshotStore persists a snapshot as a single JSON file.
// Writes go to a temporary file in the same directory which is then
// renamed over the target, so readers never see a partial file.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store for the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Path returns the snapshot file path.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Write replaces the snapshot file.
func (s *SnapshotStore) Write(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(toDocument(snapshot), "", "  ")
	if err != nil {
		return s.fail(fmt.Errorf("encode: %w", err))
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return s.fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return s.fail(err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return s.fail(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return s.fail(err)
	}
	if err := tmp.Close(); err != nil {
		return s.fail(err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return s.fail(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return s.fail(err)
	}
	committed = true
	return nil
}

// Read loads the snapshot file. A missing file returns domain.ErrNotFound.
func (s *SnapshotStore) Read(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return fromDocument(doc)
}

func (s *SnapshotStore) fail(err error) error {
	return &domain.PersistenceError{Path: s.path, Err: err}
}

func toDocument(snapshot domain.Snapshot) snapshotDocument {
	doc := snapshotDocument{
		LastUpdated:  snapshot.GeneratedAt.UTC().Format(time.RFC3339),
		Repositories: make([]repositoryJSON, len(snapshot.Repositories)),
	}
	for i, rec := range snapshot.Repositories {
		doc.Repositories[i] = repositoryJSON{
			Name:           rec.Identity,
			URL:            rec.URL,
			Description:    rec.Description,
			Stars:          rec.Stars,
			Language:       rec.Language,
			UpdatedAt:      formatTime(rec.UpdatedAt),
			CursorrulesURL: rec.MarkerFileURL,
		}
	}
	return doc
}

func fromDocument(doc snapshotDocument) (*domain.Snapshot, error) {
	generated, err := parseTime(doc.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("last_updated: %w", err)
	}

	snapshot := &domain.Snapshot{
		GeneratedAt:  generated,
		Repositories: make([]domain.RepositoryRecord, len(doc.Repositories)),
	}
	for i, r := range doc.Repositories {
		updated, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s updated_at: %w", r.Name, err)
		}
		snapshot.Repositories[i] = domain.RepositoryRecord{
			Identity:      r.Name,
			URL:           r.URL,
			Description:   r.Description,
			Stars:         r.Stars,
			Language:      r.Language,
			UpdatedAt:     updated,
			MarkerFileURL: r.CursorrulesURL,
		}
	}
	return snapshot, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
