package goAuthClient

import (
	"context"
	"io"

	"github.com/MrEthical07/goAuthClient/credstore"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/classify"
	"github.com/MrEthical07/goAuthClient/internal/request"
)

// Request is the mutable descriptor for one outgoing call. It is owned by
// the call site until handed to [Client.Do], mutated in place by pipeline
// stages, and immutable once dispatched to the transport.
type Request = request.Descriptor

// Response is the normalized transport response.
type Response = request.Response

// NewRequest creates a Request with initialized maps and a fresh trace ID.
func NewRequest(method, url string) *Request {
	return request.New(method, url)
}

// ClassifiedError is the single tagged failure type returned by the engine.
// Callers branch on its Kind rather than on raw transport details.
type ClassifiedError = classify.Error

// FailureKind tags a ClassifiedError.
type FailureKind = classify.Kind

const (
	// FailureUnclassified is the fallback kind for unusable failures.
	FailureUnclassified = classify.KindUnclassified
	// FailureOffline marks a network failure while connectivity is down.
	FailureOffline = classify.KindOffline
	// FailureUnauthorized marks HTTP 401 or a missing credential.
	FailureUnauthorized = classify.KindUnauthorized
	// FailureRefreshInProgress marks a request blocked by an in-flight refresh.
	FailureRefreshInProgress = classify.KindRefreshInProgress
	// FailureKnownHTTP marks a status present in the known-status table.
	FailureKnownHTTP = classify.KindKnownHTTP
)

// Credential is the stored credential material: access token, refresh
// token, and the refresh token's decoded expiry.
type Credential = credstore.Credential

// Transport issues a normalized request and returns a response or a
// network-level failure. HTTP error statuses are responses, not errors.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the [Transport] interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Do implements [Transport].
func (f TransportFunc) Do(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// PreferenceStore yields the user's locale and currency preferences. The
// boolean reports presence; absent values attach no header.
type PreferenceStore interface {
	Locale(ctx context.Context) (string, bool)
	Currency(ctx context.Context) (string, bool)
}

// Notifier receives exactly one display call per unhandled failure. A
// failure already marked handled is never displayed twice.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to the [Notifier] interface.
type NotifierFunc func(ctx context.Context, message string)

// Notify implements [Notifier].
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// AuditEvent is a structured audit record emitted by the client.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
