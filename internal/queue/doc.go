// Package queue holds requests blocked on an in-flight refresh and replays
// them in enqueue order once the refresh resolves.
//
// # Ordering
//
// Enqueue order is a strict FIFO sequence. Drain replays entries one at a
// time, sequentially, so dispatch order during drain equals enqueue order and
// completion order equals dispatch order by construction. One entry's replay
// failure resolves only that entry's handle; the drain continues.
//
// After a full drain or a RejectAll the queue is cleared unconditionally.
//
// # What this package must NOT do
//
//   - Decide when to drain or reject (the coordinator owns the lifecycle).
//   - Perform transport calls itself; replay is injected.
package queue
