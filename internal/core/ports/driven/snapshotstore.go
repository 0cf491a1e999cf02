package driven

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// SnapshotStore persists the collection snapshot.
type SnapshotStore interface {
	// Write replaces any prior snapshot wholesale. Implementations must
	// never leave a partially written snapshot behind.
	Write(ctx context.Context, snapshot domain.Snapshot) error

	// Read loads the current snapshot.
	// Returns domain.ErrNotFound if none has been written yet.
	Read(ctx context.Context) (*domain.Snapshot, error)

	// Path returns the snapshot location.
	Path() string
}
