package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs []domain.RunRecord
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// Record appends a run.
func (s *RunStore) Record(_ context.Context, run domain.RunRecord) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// Recent returns up to limit runs, most recent first.
func (s *RunStore) Recent(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(limit), nil
}

// Prune keeps only the keep most recent runs.
func (s *RunStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = s.sorted(keep)
	return nil
}

// sorted returns a newest-first copy (caller must hold a lock).
func (s *RunStore) sorted(limit int) []domain.RunRecord {
	out := append([]domain.RunRecord(nil), s.runs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
