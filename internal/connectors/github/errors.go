package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/markerhub/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
	Secondary bool
}

func (e *RateLimitError) Error() string {
	if e.Secondary {
		return fmt.Sprintf("github: secondary rate limit hit, retry after %s", e.ResetAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 403
	}
	return false
}

// IsValidationFailed checks if the API rejected the request itself,
// which for search usually means a malformed query.
func IsValidationFailed(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 422
	}
	return false
}

// classify attaches the domain error and a remedy hint to API errors a
// user can fix. Other errors are returned unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUnauthorized(err):
		return fmt.Errorf("%w: check GITHUB_TOKEN: %w", domain.ErrAuthFailed, err)
	case IsForbidden(err):
		return fmt.Errorf("%w: token lacks access to search: %w", domain.ErrAuthFailed, err)
	case IsValidationFailed(err):
		return fmt.Errorf("%w: malformed search query: %w", domain.ErrInvalidInput, err)
	case IsNotFound(err):
		return fmt.Errorf("%w: check github.api_url: %w", domain.ErrNotFound, err)
	default:
		return err
	}
}

// IsTransient reports whether a retry may succeed: server errors and
// network failures. Rate limits, client errors and cancellation are not.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}
