// Package rate bounds refresh attempts inside a resetting time window.
//
// # Window semantics
//
// A single in-process counter plus window-start timestamp. On each refresh
// trigger: if the window has elapsed, the counter and window-start reset;
// the counter then increments; if it exceeds the ceiling the limiter reports
// forced logout and resets immediately so the next window starts clean. This
// bounds refresh storms caused by a permanently invalid refresh token.
//
// The limiter is deliberately process-local: the engine assumes a single
// logical client per process, and cross-process coordination of the refresh
// budget is out of scope.
//
// # What this package must NOT do
//
//   - Perform I/O or touch credential storage.
//   - Decide what forced logout means (the coordinator owns that policy).
package rate
