package request

import (
	"maps"
	"strings"

	"github.com/google/uuid"
)

// Descriptor carries one outgoing request through the pipeline and, when the
// request is blocked by an in-flight refresh, through the queue.
type Descriptor struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    map[string]any
	Query   map[string]string

	// IsRetry marks a descriptor replayed from the queue after a refresh.
	// A retry bypasses the refresh gate and is never re-enqueued.
	IsRetry bool

	// IsPreprocessed marks a descriptor whose body/query routing already ran.
	IsPreprocessed bool

	// NeedsAuth requests the credential precondition check and header stage.
	NeedsAuth bool

	// TraceID identifies the request in audit events and error payloads.
	TraceID string
}

// Response is the normalized transport response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// New creates a Descriptor with initialized maps and a fresh trace ID.
func New(method, url string) *Descriptor {
	return &Descriptor{
		Method:    strings.ToUpper(method),
		URL:       url,
		Headers:   make(map[string]string),
		Body:      make(map[string]any),
		Query:     make(map[string]string),
		NeedsAuth: true,
		TraceID:   uuid.NewString(),
	}
}

// Clone returns a deep copy of the descriptor. Body values are copied
// shallowly; stages treat them as opaque.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}

	c := *d
	c.Headers = maps.Clone(d.Headers)
	c.Body = maps.Clone(d.Body)
	c.Query = maps.Clone(d.Query)
	return &c
}

// SetHeader assigns a header, allocating the map when the descriptor was
// built by hand rather than through [New].
func (d *Descriptor) SetHeader(name, value string) {
	if d.Headers == nil {
		d.Headers = make(map[string]string)
	}
	d.Headers[name] = value
}

// Header returns the header value for name, or "" when absent. Lookup is
// case-insensitive; the transport stores header keys lowercased.
func (r *Response) Header(name string) string {
	if r == nil || r.Headers == nil {
		return ""
	}
	if value, ok := r.Headers[name]; ok {
		return value
	}
	return r.Headers[strings.ToLower(name)]
}

// IsReadMethod reports whether the method carries its parameters in the
// query string rather than the body.
func IsReadMethod(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD", "OPTIONS":
		return true
	default:
		return false
	}
}
