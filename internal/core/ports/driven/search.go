package driven

import (
	"context"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// QuotaProbe reports the remote search quota.
type QuotaProbe interface {
	// CheckQuota returns the current remaining calls, limit and reset time
	// of the search endpoint. It does not consume search quota.
	CheckQuota(ctx context.Context) (domain.Quota, error)
}

// SearchService is the remote repository search collaborator.
// Both operations are fallible, latency-bearing calls.
type SearchService interface {
	QuotaProbe

	// SearchPage fetches a single page of results for one query.
	// A returned page with NextPage == 0 is the last page.
	SearchPage(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error)
}
