// Package request defines the mutable request descriptor that travels through
// the pipeline and the normalized response returned by transports.
//
// # Ownership
//
// A Descriptor is owned by its call site until handed to the pipeline, is
// mutated in place by pipeline stages, and must be treated as immutable once
// dispatched to a transport. Queued descriptors keep their flag state (IsRetry,
// IsPreprocessed) across enqueue and replay.
//
// # What this package must NOT do
//
//   - Perform I/O or touch credential storage.
//   - Import goAuthClient or any sibling internal package.
package request
