package services

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/markerhub/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/markerhub/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func seededCatalog(t *testing.T, records ...domain.RepositoryRecord) *CatalogService {
	t.Helper()
	store := memory.NewSnapshotStore()
	generated := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Write(context.Background(), domain.NewSnapshot(records, generated)))
	return NewCatalogService(store)
}

func catalogFixture() []domain.RepositoryRecord {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []domain.RepositoryRecord{
		{Identity: "acme/rules", Stars: 10, Language: strPtr("Go"), Description: strPtr("Cursor rules for Go"), UpdatedAt: base},
		{Identity: "acme/web", Stars: 50, Language: strPtr("TypeScript"), UpdatedAt: base.Add(48 * time.Hour)},
		{Identity: "zed/tools", Stars: 30, Language: strPtr("Go"), UpdatedAt: base.Add(24 * time.Hour)},
		{Identity: "solo/none", Stars: 1},
	}
}

func TestCatalogService_DefaultsToStars(t *testing.T) {
	svc := seededCatalog(t, catalogFixture()...)

	page, err := svc.List(context.Background(), domain.CatalogQuery{})

	require.NoError(t, err)
	assert.Equal(t, []string{"acme/web", "zed/tools", "acme/rules", "solo/none"}, identities(page.Repositories))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 4, page.TotalMatches)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), page.GeneratedAt)
}

func TestCatalogService_Filters(t *testing.T) {
	svc := seededCatalog(t, catalogFixture()...)

	tests := []struct {
		name  string
		query domain.CatalogQuery
		want  []string
	}{
		{"language", domain.CatalogQuery{Language: "Go"}, []string{"zed/tools", "acme/rules"}},
		{"search name", domain.CatalogQuery{Search: "ACME"}, []string{"acme/web", "acme/rules"}},
		{"search description", domain.CatalogQuery{Search: "cursor rules"}, []string{"acme/rules"}},
		{"language and search", domain.CatalogQuery{Language: "Go", Search: "tools"}, []string{"zed/tools"}},
		{"no match", domain.CatalogQuery{Language: "Rust"}, []string{}},
		{"updated sort", domain.CatalogQuery{Sort: domain.CatalogSortUpdated, Language: "Go"}, []string{"zed/tools", "acme/rules"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.List(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, identities(page.Repositories))
		})
	}
}

func TestCatalogService_Paginates(t *testing.T) {
	var records []domain.RepositoryRecord
	for i := 0; i < 30; i++ {
		records = append(records, domain.RepositoryRecord{Identity: fmt.Sprintf("o/r%02d", i), Stars: 100 - i})
	}
	svc := seededCatalog(t, records...)

	first, err := svc.List(context.Background(), domain.CatalogQuery{})
	require.NoError(t, err)
	assert.Len(t, first.Repositories, domain.DefaultCatalogPageSize)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, "o/r00", first.Repositories[0].Identity)

	last, err := svc.List(context.Background(), domain.CatalogQuery{Page: 3})
	require.NoError(t, err)
	assert.Len(t, last.Repositories, 6)
	assert.Equal(t, "o/r24", last.Repositories[0].Identity)

	beyond, err := svc.List(context.Background(), domain.CatalogQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, beyond.Repositories)
	assert.Equal(t, 30, beyond.TotalMatches)

	clamped, err := svc.List(context.Background(), domain.CatalogQuery{Page: -1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, clamped.Page)
	assert.Equal(t, 6, clamped.TotalPages)
}

func TestCatalogService_HugePageIsEmpty(t *testing.T) {
	svc := seededCatalog(t, catalogFixture()[0])

	tests := []struct {
		name  string
		query domain.CatalogQuery
	}{
		{"max page", domain.CatalogQuery{Page: math.MaxInt}},
		{"max page and size", domain.CatalogQuery{Page: math.MaxInt, PageSize: math.MaxInt}},
		{"max size", domain.CatalogQuery{PageSize: math.MaxInt}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page *domain.CatalogPage
			var err error
			require.NotPanics(t, func() {
				page, err = svc.List(context.Background(), tt.query)
			})
			require.NoError(t, err)
			assert.Equal(t, 1, page.TotalPages)
			assert.Equal(t, 1, page.TotalMatches)
			if tt.query.Page == math.MaxInt {
				assert.Empty(t, page.Repositories)
			} else {
				assert.Len(t, page.Repositories, 1)
			}
		})
	}
}

func TestCatalogService_Errors(t *testing.T) {
	svc := seededCatalog(t, catalogFixture()...)
	_, err := svc.List(context.Background(), domain.CatalogQuery{Sort: "forks"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	empty := NewCatalogService(memory.NewSnapshotStore())
	_, err = empty.List(context.Background(), domain.CatalogQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = empty.Languages(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_Languages(t *testing.T) {
	svc := seededCatalog(t, catalogFixture()...)

	languages, err := svc.Languages(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "TypeScript"}, languages)
}
