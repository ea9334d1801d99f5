// Package classify normalizes transport and HTTP failures into a single
// tagged error type so the refresh coordinator and callers branch on kind
// rather than on raw transport details.
//
// # Kinds
//
//   - Offline: network-level failure while local connectivity is known down.
//   - Unauthorized: HTTP 401, or a missing-credential precondition.
//   - RefreshInProgress: internal flow-control signal raised by the pipeline
//     refresh gate. Never shown to the user.
//   - KnownHTTP: any other status present in the known-status message table.
//   - Unclassified: everything else, with a generic message.
//
// Classification never fails: an undecodable error body degrades to the
// generic message with trace ID "N/A" instead of propagating a secondary
// failure.
//
// # What this package must NOT do
//
//   - Trigger refreshes, queue requests, or notify users.
//   - Import goAuthClient or perform I/O.
package classify
