package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github.com/custodia-labs/markerhub/internal/core/domain"
	"github.com/custodia-labs/markerhub/internal/core/ports/driven"
	"github.com/custodia-labs/markerhub/internal/logger"
)

// Ensure Client implements the search port.
var _ driven.SearchService = (*Client)(nil)

// CheckQuota returns the search quota from the rate limit endpoint.
func (c *Client) CheckQuota(ctx context.Context) (domain.Quota, error) {
	var limits *gh.RateLimits
	err := c.withRetry(ctx, "check quota", func() error {
		var err error
		limits, err = c.RateLimit(ctx)
		return err
	})
	if err != nil {
		return domain.Quota{}, classify(err)
	}

	search := limits.GetSearch()
	if search == nil {
		return domain.Quota{}, errors.New("github: rate limit response has no search resource")
	}

	quota := domain.Quota{
		Remaining: search.Remaining,
		Limit:     search.Limit,
		ResetAt:   search.Reset.Time,
	}
	c.rateLimiter.Observe(quota)
	return quota, nil
}

// SearchPage fetches one page of repository search results.
func (c *Client) SearchPage(ctx context.Context, req domain.SearchRequest) (*domain.SearchPage, error) {
	opts := &gh.SearchOptions{
		Sort:  req.Order.Sort,
		Order: req.Order.Order,
		ListOptions: gh.ListOptions{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
	}

	var (
		result *gh.RepositoriesSearchResult
		resp   *gh.Response
	)
	err := c.withRetry(ctx, fmt.Sprintf("search %q page %d", req.Query, req.Page), func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		var err error
		result, resp, err = c.gh.Search.Repositories(ctx, req.Query, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, "search repositories")
		}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	if quota := c.rateLimiter.Quota(); !quota.ResetAt.IsZero() {
		logger.Debug("Search quota after page %d: %d/%d, resets %s",
			req.Page, quota.Remaining, quota.Limit, quota.ResetAt.Format(time.RFC3339))
	}

	page := &domain.SearchPage{
		Hits:  make([]domain.SearchHit, 0, len(result.Repositories)),
		Total: result.GetTotal(),
	}
	if resp != nil {
		page.NextPage = resp.NextPage
	}
	for _, repo := range result.Repositories {
		if repo == nil {
			continue
		}
		page.Hits = append(page.Hits, toSearchHit(repo))
	}
	return page, nil
}

func toSearchHit(repo *gh.Repository) domain.SearchHit {
	return domain.SearchHit{
		FullName:      repo.GetFullName(),
		HTMLURL:       repo.GetHTMLURL(),
		Description:   repo.Description,
		Stars:         repo.GetStargazersCount(),
		Language:      repo.Language,
		UpdatedAt:     repo.GetUpdatedAt().Time,
		DefaultBranch: repo.GetDefaultBranch(),
	}
}
