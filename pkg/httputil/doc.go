// Package httputil provides HTTP utilities for fetching remote graph documents.
//
// # Overview
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [Get]: GET a URL with retry, status classification and observability hooks
//
// # Retry
//
// [Retry] re-runs an operation only when it fails with a [RetryableError].
// [Get] marks these failures retryable:
//
//   - Network errors (connection refused, reset, timeouts)
//   - 5xx server errors
//   - 429 rate limit responses
//
// Any other non-2xx status fails immediately.
//
//	body, err := httputil.Get(ctx, http.DefaultClient, "https://example.com/graph.json", httputil.DefaultPolicy)
//
// # Configuration
//
// [DefaultPolicy] performs 3 attempts starting with a 1 second delay,
// doubling after each failure, and reads at most 32 MiB of body.
package httputil
