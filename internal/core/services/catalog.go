package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService browses the persisted snapshot.
type CatalogService struct {
	store driven.SnapshotStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.SnapshotStore) *CatalogService {
	return &CatalogService{store: store}
}

// List filters by language and search text, sorts, and returns one page.
// A page past the end returns no repositories but valid totals.
func (s *CatalogService) List(ctx context.Context, query domain.CatalogQuery) (*domain.CatalogPage, error) {
	snapshot, err := s.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	sortKey := query.Sort
	if sortKey == "" {
		sortKey = domain.CatalogSortStars
	}
	if sortKey != domain.CatalogSortStars && sortKey != domain.CatalogSortUpdated {
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, query.Sort)
	}

	needle := strings.ToLower(strings.TrimSpace(query.Search))
	matches := make([]domain.RepositoryRecord, 0, len(snapshot.Repositories))
	for _, rec := range snapshot.Repositories {
		if query.Language != "" && (rec.Language == nil || *rec.Language != query.Language) {
			continue
		}
		if needle != "" && !matchesSearch(rec, needle) {
			continue
		}
		matches = append(matches, rec)
	}

	if sortKey == domain.CatalogSortUpdated {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].UpdatedAt.After(matches[j].UpdatedAt)
		})
	} else {
		matches = domain.SortRecords(matches)
	}

	size := query.PageSize
	if size < 1 {
		size = domain.DefaultCatalogPageSize
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if len(matches) > 0 {
		totalPages = (len(matches)-1)/size + 1
	}

	// Pages past the end are empty. Checked before multiplying so huge
	// page numbers cannot overflow.
	start, end := len(matches), len(matches)
	if page <= totalPages {
		start = (page - 1) * size
		end = min(start+size, len(matches))
	}

	return &domain.CatalogPage{
		GeneratedAt:  snapshot.GeneratedAt,
		Repositories: matches[start:end],
		Page:         page,
		TotalPages:   totalPages,
		TotalMatches: len(matches),
	}, nil
}

// Languages returns the sorted distinct primary languages.
func (s *CatalogService) Languages(ctx context.Context) ([]string, error) {
	snapshot, err := s.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	set := make(map[string]struct{})
	for _, rec := range snapshot.Repositories {
		if rec.Language != nil && *rec.Language != "" {
			set[*rec.Language] = struct{}{}
		}
	}

	languages := make([]string, 0, len(set))
	for lang := range set {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages, nil
}

func matchesSearch(rec domain.RepositoryRecord, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Identity), needle) {
		return true
	}
	return rec.Description != nil && strings.Contains(strings.ToLower(*rec.Description), needle)
}
