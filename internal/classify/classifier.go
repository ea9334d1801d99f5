package classify

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// UnknownTraceID is attached when the error body carries no trace identifier.
const UnknownTraceID = "N/A"

// GenericMessage is used when neither the status table nor the body yields
// anything user-facing.
const GenericMessage = "Something went wrong. Please try again."

// DefaultStatusMessages is the built-in known-status table. Builder config
// may override or extend it.
func DefaultStatusMessages() map[int]string {
	return map[int]string{
		http.StatusUnauthorized:        "Your session has expired. Please log in again.",
		http.StatusRequestTimeout:      "The request timed out. Please try again.",
		http.StatusTooManyRequests:     "Too many requests. Please slow down.",
		http.StatusInternalServerError: "The server hit an unexpected error.",
		http.StatusGatewayTimeout:      "The server took too long to respond.",
	}
}

// Classifier maps failed requests and responses to tagged errors.
type Classifier struct {
	messages map[int]string

	// online reports local connectivity; nil means always assume online.
	online func() bool
}

// New creates a Classifier with the given status table and connectivity
// probe. A nil table falls back to [DefaultStatusMessages].
func New(messages map[int]string, online func() bool) *Classifier {
	if messages == nil {
		messages = DefaultStatusMessages()
	}
	return &Classifier{messages: messages, online: online}
}

// Message returns the table entry for status, or "" when unknown.
func (c *Classifier) Message(status int) string {
	if c == nil {
		return ""
	}
	return c.messages[status]
}

// TransportError classifies a network-level failure for the descriptor.
func (c *Classifier) TransportError(d *request.Descriptor, err error) *Error {
	kind := KindUnclassified
	message := GenericMessage
	if c != nil && c.online != nil && !c.online() {
		kind = KindOffline
		message = "You appear to be offline. Check your connection."
	}

	return &Error{
		Kind:    kind,
		Message: message,
		TraceID: traceID(d, UnknownTraceID),
		Cause:   err,
	}
}

// Response classifies a non-success HTTP response. The binary body is decoded
// for a structured message and trace identifier; decode failures degrade to
// the generic message.
func (c *Classifier) Response(d *request.Descriptor, resp *request.Response) *Error {
	status := 0
	var body []byte
	if resp != nil {
		status = resp.StatusCode
		body = resp.Body
	}

	message, trace := DecodeErrorBody(body)
	if trace == UnknownTraceID {
		trace = traceID(d, trace)
	}

	kind := KindUnclassified
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case c != nil && c.messages[status] != "":
		kind = KindKnownHTTP
	}

	// A canned table message wins over whatever the server sent; the decoded
	// body message is kept only when nothing canned exists.
	if c != nil {
		if canned := c.messages[status]; canned != "" {
			message = canned
		}
	}

	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    message,
		TraceID:    trace,
	}
}

// errorBody is the structured payload some backends attach to failures.
type errorBody struct {
	Message string `json:"message"`
	TraceID string `json:"traceId"`
}

// DecodeErrorBody parses an opaque error body. It returns the generic message
// and [UnknownTraceID] when the body is empty or unparseable.
func DecodeErrorBody(body []byte) (message, trace string) {
	message = GenericMessage
	trace = UnknownTraceID

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return message, trace
	}

	var decoded errorBody
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return message, trace
	}

	if decoded.Message != "" {
		message = decoded.Message
	}
	if decoded.TraceID != "" {
		trace = decoded.TraceID
	}
	return message, trace
}

func traceID(d *request.Descriptor, fallback string) string {
	if d != nil && d.TraceID != "" {
		return d.TraceID
	}
	return fallback
}
