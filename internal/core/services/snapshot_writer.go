package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
)

// SnapshotWriter sorts collected records and persists them.
type SnapshotWriter struct {
	store driven.SnapshotStore
	clock driven.Clock
}

// NewSnapshotWriter creates a new snapshot writer.
func NewSnapshotWriter(store driven.SnapshotStore, clock driven.Clock) *SnapshotWriter {
	return &SnapshotWriter{store: store, clock: clock}
}

// Write refuses an empty collection with domain.ErrEmptyResult, since an
// empty snapshot would erase prior good data. Storage failures are
// reported as *domain.PersistenceError.
func (w *SnapshotWriter) Write(ctx context.Context, records []domain.RepositoryRecord) (domain.Snapshot, error) {
	if len(records) == 0 {
		return domain.Snapshot{}, domain.ErrEmptyResult
	}

	snapshot := domain.NewSnapshot(records, w.clock.Now())
	if err := w.store.Write(ctx, snapshot); err != nil {
		var persistErr *domain.PersistenceError
		if errors.As(err, &persistErr) {
			return domain.Snapshot{}, err
		}
		return domain.Snapshot{}, &domain.PersistenceError{Path: w.store.Path(), Err: err}
	}
	return snapshot, nil
}
