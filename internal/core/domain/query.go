package domain

import (
	"fmt"
	"strings"
)

// DefaultQueries are the search expressions used when none are configured.
// Each surfaces a possibly-overlapping set of repositories.
var DefaultQueries = []string{
	"filename:.cursorrules",
	".cursorrules in:path",
	"cursorrules in:name,description,readme",
}

// QuerySpec is an ordered list of distinct search expressions.
type QuerySpec []string

// NewQuerySpec trims the expressions, drops blanks, and rejects duplicates.
func NewQuerySpec(queries []string) (QuerySpec, error) {
	spec := make(QuerySpec, 0, len(queries))
	seen := make(map[string]struct{}, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			return nil, fmt.Errorf("%w: duplicate query %q", ErrInvalidInput, q)
		}
		seen[q] = struct{}{}
		spec = append(spec, q)
	}
	if len(spec) == 0 {
		return nil, fmt.Errorf("%w: no queries", ErrInvalidInput)
	}
	return spec, nil
}

// SortOrder is the result ordering requested from the search service.
type SortOrder struct {
	// Sort is the field, e.g. "stars" or "updated".
	Sort string

	// Order is "desc" or "asc".
	Order string
}

// PopularityOrder requests the most-starred repositories first.
var PopularityOrder = SortOrder{Sort: "stars", Order: "desc"}

// SearchRequest is a single page request for one query.
type SearchRequest struct {
	Query   string
	Order   SortOrder
	Page    int
	PerPage int
}
