package classify

import (
	"fmt"
	"sync/atomic"
)

// Kind tags a classified failure.
type Kind int

const (
	// KindUnclassified is the fallback for failures with no usable signal.
	KindUnclassified Kind = iota
	// KindOffline marks a network failure while connectivity is known down.
	KindOffline
	// KindUnauthorized marks HTTP 401 or a missing credential.
	KindUnauthorized
	// KindRefreshInProgress marks a request blocked by an in-flight refresh.
	KindRefreshInProgress
	// KindKnownHTTP marks a status present in the known-status table.
	KindKnownHTTP
)

// String returns a stable label for audit events and tests.
func (k Kind) String() string {
	switch k {
	case KindOffline:
		return "offline"
	case KindUnauthorized:
		return "unauthorized"
	case KindRefreshInProgress:
		return "refresh_in_progress"
	case KindKnownHTTP:
		return "known_http"
	default:
		return "unclassified"
	}
}

// Error is the single tagged failure type produced by classification.
// It carries the kind, the HTTP status when one exists, a user-facing
// message, and the trace ID extracted from the decoded error body.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	TraceID    string

	// Cause is the underlying transport or pipeline error, when any.
	Cause error

	handled atomic.Bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// MarkHandled flips the handled flag and reports whether this call was the
// first to do so. The flag is set exactly once, at the point the failure is
// shown or otherwise terminally processed, so a propagating error is never
// displayed twice.
func (e *Error) MarkHandled() bool {
	if e == nil {
		return false
	}
	return e.handled.CompareAndSwap(false, true)
}

// Handled reports whether the failure was already terminally processed.
func (e *Error) Handled() bool {
	return e != nil && e.handled.Load()
}
