// Package middleware exposes http.RoundTripper adapters that attach stored
// credentials to plain net/http requests outside the goAuthClient pipeline.
//
// # Adapters
//
//   - [Attach] — injects the client's configured credential header.
//   - [AttachHeader] — injects a caller-chosen header name.
//   - [AttachBearer] — injects Authorization: Bearer for third-party APIs.
//
// Each adapter reads the current credential from a [CredentialSource] (a
// [goAuthClient.Client] satisfies it) and forwards the request with the header
// set. Requests without a stored credential pass through unmodified.
//
// # Architecture boundaries
//
// This package translates credential lookups into HTTP headers. It does NOT
// participate in refresh coordination — a 401 on a wrapped transport is
// returned to the caller as-is.
//
// # What this package must NOT do
//
//   - Trigger or wait on token refresh (goAuthClient.Client handles that).
//   - Decode or validate JWTs.
//   - Retry or replay failed requests.
package middleware
