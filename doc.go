// Package goAuthClient provides a client-side HTTP middleware engine that
// attaches credentials to outgoing requests, detects authentication
// failures, and transparently recovers from an expired credential by
// performing a single coordinated refresh while other requests wait, then
// replays them in order.
//
// The package is the client-side counterpart of goAuth: it speaks the same
// token protocol (x-access-token / x-refresh-token headers, rotating refresh
// tokens) from the consumer side.
//
// # Architecture boundaries
//
// goAuthClient is the public surface. It exposes [Client], [Builder],
// [Config], and value types (Request, Response, ClassifiedError, audit
// sinks). All internal coordination — the pipeline stage chain, the refresh
// cycle, the request queue, the attempt limiter, error classification —
// lives under internal/ and is never exported.
//
// # Single-flight guarantee
//
// For any burst of concurrent unauthorized failures while the client is
// idle, exactly one refresh call reaches the transport. Every other request
// waits in a FIFO queue and is replayed sequentially, in enqueue order, once
// the refresh resolves. A replayed request that fails again propagates its
// failure to its original caller and is never re-enqueued.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or the queue in its public API.
//   - Perform I/O outside of Client methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports goAuthClient (no import cycles).
package goAuthClient
