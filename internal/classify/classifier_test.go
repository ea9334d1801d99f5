package classify

import (
	"errors"
	"net/http"
	"testing"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

func TestResponseClassifiesUnauthorized(t *testing.T) {
	c := New(nil, nil)
	d := request.New("GET", "/me")

	err := c.Response(d, &request.Response{StatusCode: http.StatusUnauthorized})
	if err.Kind != KindUnauthorized {
		t.Fatalf("kind %v, want unauthorized", err.Kind)
	}
	if err.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", err.StatusCode)
	}
}

func TestResponseKnownStatusTable(t *testing.T) {
	c := New(nil, nil)

	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusRequestTimeout, KindKnownHTTP},
		{http.StatusTooManyRequests, KindKnownHTTP},
		{http.StatusInternalServerError, KindKnownHTTP},
		{http.StatusGatewayTimeout, KindKnownHTTP},
		{http.StatusTeapot, KindUnclassified},
	}

	for _, tc := range cases {
		err := c.Response(request.New("GET", "/x"), &request.Response{StatusCode: tc.status})
		if err.Kind != tc.kind {
			t.Fatalf("status %d: kind %v, want %v", tc.status, err.Kind, tc.kind)
		}
		if tc.kind == KindKnownHTTP && err.Message == GenericMessage {
			t.Fatalf("status %d: expected canned message, got generic", tc.status)
		}
	}
}

func TestDecodeErrorBody(t *testing.T) {
	message, trace := DecodeErrorBody([]byte(`{"message":"bad","traceId":"t1"}`))
	if message != "bad" || trace != "t1" {
		t.Fatalf("decoded %q/%q, want bad/t1", message, trace)
	}

	message, trace = DecodeErrorBody(nil)
	if message != GenericMessage || trace != UnknownTraceID {
		t.Fatalf("empty body: %q/%q", message, trace)
	}

	message, trace = DecodeErrorBody([]byte{0x1f, 0x8b, 0x00})
	if message != GenericMessage || trace != UnknownTraceID {
		t.Fatalf("binary garbage: %q/%q", message, trace)
	}
}

func TestResponseDecodesBodyTrace(t *testing.T) {
	c := New(nil, nil)
	d := request.New("GET", "/x")

	err := c.Response(d, &request.Response{
		StatusCode: http.StatusConflict,
		Body:       []byte(`{"message":"bad","traceId":"t1"}`),
	})
	if err.Message != "bad" {
		t.Fatalf("message %q, want bad", err.Message)
	}
	if err.TraceID != "t1" {
		t.Fatalf("trace %q, want t1", err.TraceID)
	}
}

func TestTransportErrorOffline(t *testing.T) {
	c := New(nil, func() bool { return false })

	err := c.TransportError(request.New("GET", "/x"), errors.New("dial tcp: no route"))
	if err.Kind != KindOffline {
		t.Fatalf("kind %v, want offline", err.Kind)
	}

	online := New(nil, func() bool { return true })
	err = online.TransportError(request.New("GET", "/x"), errors.New("dial tcp: refused"))
	if err.Kind != KindUnclassified {
		t.Fatalf("kind %v, want unclassified", err.Kind)
	}
}

func TestMarkHandledExactlyOnce(t *testing.T) {
	err := &Error{Kind: KindKnownHTTP, Message: "m"}

	if !err.MarkHandled() {
		t.Fatal("first MarkHandled must report true")
	}
	if err.MarkHandled() {
		t.Fatal("second MarkHandled must report false")
	}
	if !err.Handled() {
		t.Fatal("Handled must be sticky")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := &Error{Kind: KindUnclassified, Cause: cause}

	if !errors.Is(err, cause) {
		t.Fatal("classified error must unwrap to its cause")
	}
}
