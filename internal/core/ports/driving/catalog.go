package driving

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// CatalogService browses the persisted snapshot.
type CatalogService interface {
	// List filters, sorts and pages the snapshot.
	List(ctx context.Context, query domain.CatalogQuery) (*domain.CatalogPage, error)

	// Languages returns the distinct primary languages in the snapshot.
	Languages(ctx context.Context) ([]string, error)
}

// HistoryService exposes past collection runs.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
