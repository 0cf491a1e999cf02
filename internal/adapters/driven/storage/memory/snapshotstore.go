package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *domain.Snapshot
	writes   int
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Write replaces the stored snapshot.
func (s *SnapshotStore) Write(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := snapshot
	cp.Repositories = append([]domain.RepositoryRecord(nil), snapshot.Repositories...)
	s.snapshot = &cp
	s.writes++
	return nil
}

// Read returns the stored snapshot or domain.ErrNotFound.
func (s *SnapshotStore) Read(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	cp := *s.snapshot
	cp.Repositories = append([]domain.RepositoryRecord(nil), s.snapshot.Repositories...)
	return &cp, nil
}

// Path identifies the store in error messages.
func (s *SnapshotStore) Path() string {
	return "memory"
}

// Writes returns how many snapshots have been written.
func (s *SnapshotStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
