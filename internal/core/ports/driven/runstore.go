package driven

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// RunStore records the history of collection runs.
type RunStore interface {
	// Record appends a run outcome.
	Record(ctx context.Context, run domain.RunRecord) error

	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Prune deletes all but the keep most recent runs.
	Prune(ctx context.Context, keep int) error
}
