package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit applies when callers pass a non-positive limit.
const defaultHistoryLimit = 20

// HistoryService exposes recorded collection runs.
type HistoryService struct {
	store driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.RunStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns the latest runs, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.store == nil {
		return nil, errors.New("run history not configured")
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}
