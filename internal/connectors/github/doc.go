// Package github implements the repository search port against the
// GitHub REST API using go-github.
//
// # Authentication
//
// A personal access token (classic or fine-grained) is sent as a bearer
// token through an oauth2 static token source. Authenticated search is
// limited to 30 requests per minute; unauthenticated search is not
// supported.
//
// # Rate Limiting
//
// Two mechanisms cooperate:
//
//  1. Proactive throttling: a token bucket admits roughly 0.5 requests
//     per second, matching the search limit.
//
//  2. Quota tracking: X-RateLimit-* headers on search responses and the
//     rate limit endpoint keep the last known search quota. Waiting for a
//     quota reset is left to the caller's governor, which probes it via
//     [Client.CheckQuota].
//
// # Error Handling
//
//   - Server errors and network failures are retried with exponential
//     backoff, up to [MaxRetries] times.
//   - Rate limit errors (primary and secondary) surface as
//     [*RateLimitError] and are not retried.
//   - Other API errors surface as [*APIError]; helpers such as
//     [IsUnauthorized] and [IsValidationFailed] classify them.
//
// # Example Usage
//
//	client, err := github.NewClient(ctx, github.Config{Token: token})
//	if err != nil {
//	    return err
//	}
//	quota, _ := client.CheckQuota(ctx)
//	page, err := client.SearchPage(ctx, domain.SearchRequest{
//	    Query: "filename:.cursorrules", Order: domain.PopularityOrder,
//	    Page: 1, PerPage: 100,
//	})
package github
