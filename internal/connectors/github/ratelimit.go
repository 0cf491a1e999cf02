package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

const (
	// SearchRateLimit is the authenticated search limit (30/minute).
	SearchRateLimit = 30

	// ProactiveRate is the proactive throttle rate (0.5 req/sec = 30/min).
	ProactiveRate = 0.5

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRateResource names the quota bucket a response counted against.
	HeaderRateResource = "X-RateLimit-Resource"
)

// RateLimiter throttles search requests and tracks the search quota
// reported in response headers.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int           // From API header
	limit     int           // From API header
	resetTime time.Time     // From API header
	bucket    *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a limiter allowing perSecond requests.
// A negative perSecond disables throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond < 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		remaining: SearchRateLimit, // Assume full quota initially
		limit:     SearchRateLimit,
		bucket:    rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the token bucket admits a request.
// Quota exhaustion is handled by the caller's governor, not here.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse updates quota state from search response headers.
// Responses counted against other resources are ignored.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if res := resp.Header.Get(HeaderRateResource); res != "" && res != "search" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Observe records a quota probed from the rate limit endpoint.
func (r *RateLimiter) Observe(q domain.Quota) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = q.Remaining
	r.limit = q.Limit
	r.resetTime = q.ResetAt
}

// Quota returns the last known search quota.
func (r *RateLimiter) Quota() domain.Quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Quota{Remaining: r.remaining, Limit: r.limit, ResetAt: r.resetTime}
}
