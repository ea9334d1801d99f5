// Package flows contains the refresh-cycle orchestration logic, decoupled
// from the root package through an explicit dependency struct.
//
// # Architecture boundaries
//
// RunRefresh owns the order of operations inside one refresh attempt: rate
// budget check, the single refresh transport call, token decoding, and
// credential persistence. It does not own the Idle/Refreshing state machine
// or the request queue — the root coordinator drives those around the cycle
// and maps failure kinds to public sentinels, audit events, and metrics.
//
// # What this package must NOT do
//
//   - Import goAuthClient (no import cycles).
//   - Touch the queue or the refresh state flag.
package flows
