// Package transport issues normalized request descriptors over net/http.
//
// # Behavior
//
// Read-method descriptors encode their parameters into the query string;
// mutating methods send a JSON body. Any HTTP response, success or failure,
// is returned as a normalized response with status, headers, and body —
// classification of non-success statuses belongs to the caller. Only
// network-level failures return an error.
//
// The default timeout is deliberately very long: the engine has no
// cancellation of queued requests, so callers needing bounded latency layer
// their own context deadline above it.
//
// # What this package must NOT do
//
//   - Attach credentials or preference headers (pipeline stages own that).
//   - Retry or classify failures.
package transport
