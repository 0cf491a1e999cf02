package domain

import "time"

// Catalog sort keys.
const (
	CatalogSortStars   = "stars"
	CatalogSortUpdated = "updated"
)

// DefaultCatalogPageSize is the number of repositories per catalog page.
const DefaultCatalogPageSize = 12

// CatalogQuery filters and pages a persisted snapshot.
type CatalogQuery struct {
	// Language keeps only repositories with this exact primary language.
	Language string

	// Search keeps repositories whose identity or description contains it,
	// case-insensitively.
	Search string

	// Sort is CatalogSortStars (default) or CatalogSortUpdated.
	Sort string

	// Page is 1-based. Values below 1 are treated as 1.
	Page int

	// PageSize defaults to DefaultCatalogPageSize.
	PageSize int
}

// CatalogPage is one page of a filtered snapshot.
type CatalogPage struct {
	GeneratedAt  time.Time
	Repositories []RepositoryRecord
	Page         int
	TotalPages   int
	TotalMatches int
}
