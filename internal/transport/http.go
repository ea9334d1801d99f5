package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// DefaultTimeout effectively disables timeout-driven cancellation; the
// transport's own deadline should never be the thing that fails a queued
// replay.
const DefaultTimeout = 10 * time.Minute

// maxResponseSize caps how much of a response body is read into memory.
const maxResponseSize = 32 << 20

// Config holds HTTP transport tuning parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond enables an outbound throttle when positive.
	RequestsPerSecond float64
	Burst             int

	// HTTPClient overrides the constructed client when set.
	HTTPClient *http.Client
}

// HTTP sends descriptors over a net/http client.
type HTTP struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewHTTP creates an HTTP transport.
func NewHTTP(cfg Config) *HTTP {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &HTTP{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: limiter,
	}
}

// Do issues one request. The returned response carries any HTTP status; a
// non-nil error means the request never produced a response.
func (t *HTTP) Do(ctx context.Context, d *request.Descriptor) (*request.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("transport throttle: %w", err)
		}
	}

	target, err := t.buildURL(d)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if !request.IsReadMethod(d.Method) && len(d.Body) > 0 {
		encoded, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, d.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for name, value := range d.Headers {
		req.Header.Set(name, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	headers := make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		headers[strings.ToLower(name)] = resp.Header.Get(name)
	}

	return &request.Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       data,
	}, nil
}

func (t *HTTP) buildURL(d *request.Descriptor) (string, error) {
	raw := d.URL
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = t.baseURL + "/" + strings.TrimLeft(raw, "/")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", d.URL, err)
	}

	if len(d.Query) > 0 {
		values := parsed.Query()
		for key, value := range d.Query {
			values.Set(key, value)
		}
		parsed.RawQuery = values.Encode()
	}

	return parsed.String(), nil
}
