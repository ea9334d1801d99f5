package goAuthClient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goAuthClient/credstore"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/classify"
	"github.com/MrEthical07/goAuthClient/internal/pipeline"
	"github.com/MrEthical07/goAuthClient/internal/queue"
	"github.com/MrEthical07/goAuthClient/internal/rate"
	"github.com/MrEthical07/goAuthClient/jwt"
)

// Client defines a public type used by goAuthClient APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config     Config
	transport  Transport
	store      credstore.Store
	prefs      PreferenceStore
	notifier   Notifier
	online     func() bool
	classifier *classify.Classifier
	limiter    *rate.Limiter
	audit      *internalaudit.Dispatcher
	metrics    *Metrics

	requestChain  *pipeline.Chain
	responseChain *pipeline.ResponseChain

	// refreshMu guards the refresh state flag and every queue mutation. The
	// Idle-to-Refreshing transition is a check-and-set under this lock, so
	// concurrent unauthorized failures can never both claim the cycle.
	refreshMu  sync.Mutex
	refreshing bool
	queue      *queue.Queue

	closed atomic.Bool
}

// contextPreferenceSource layers per-request context overrides on top of the
// configured preference store.
type contextPreferenceSource struct {
	store PreferenceStore
}

func (p contextPreferenceSource) Locale(ctx context.Context) (string, bool) {
	if locale, ok := localeFromContext(ctx); ok {
		return locale, true
	}
	if p.store == nil {
		return "", false
	}
	return p.store.Locale(ctx)
}

func (p contextPreferenceSource) Currency(ctx context.Context) (string, bool) {
	if currency, ok := currencyFromContext(ctx); ok {
		return currency, true
	}
	if p.store == nil {
		return "", false
	}
	return p.store.Currency(ctx)
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or transport checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.closed.Store(true)

	c.refreshMu.Lock()
	c.queue.RejectAll(ErrClientNotReady)
	c.refreshMu.Unlock()

	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or transport checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or transport checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) isRefreshing() bool {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.refreshing
}

func (c *Client) accessToken(ctx context.Context) (string, bool) {
	value, ok, err := c.store.Get(ctx, credstore.KeyAccessToken)
	if err != nil || !ok || value == "" {
		return "", false
	}
	return value, true
}

// Do describes the do operation and its observable behavior.
//
// Do may return an error when input validation, dependency calls, or transport checks fail.
// Do does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c == nil || c.transport == nil {
		return nil, ErrClientNotReady
	}
	if c.closed.Load() {
		return nil, ErrClientNotReady
	}
	if req == nil {
		return nil, errors.New("nil request")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if c.metrics != nil && c.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() {
			c.metrics.Observe(MetricRequestLatency, time.Since(start))
		}()
	}

	return c.dispatch(ctx, req)
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or transport checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Get(ctx context.Context, url string, body map[string]any) (*Response, error) {
	req := NewRequest(http.MethodGet, url)
	req.Body = body
	return c.Do(ctx, req)
}

// Post describes the post operation and its observable behavior.
//
// Post may return an error when input validation, dependency calls, or transport checks fail.
// Post does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Post(ctx context.Context, url string, body map[string]any) (*Response, error) {
	req := NewRequest(http.MethodPost, url)
	req.Body = body
	return c.Do(ctx, req)
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or transport checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Put(ctx context.Context, url string, body map[string]any) (*Response, error) {
	req := NewRequest(http.MethodPut, url)
	req.Body = body
	return c.Do(ctx, req)
}

// Patch describes the patch operation and its observable behavior.
//
// Patch may return an error when input validation, dependency calls, or transport checks fail.
// Patch does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Patch(ctx context.Context, url string, body map[string]any) (*Response, error) {
	req := NewRequest(http.MethodPatch, url)
	req.Body = body
	return c.Do(ctx, req)
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or transport checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Delete(ctx context.Context, url string, body map[string]any) (*Response, error) {
	req := NewRequest(http.MethodDelete, url)
	req.Body = body
	return c.Do(ctx, req)
}

// dispatch runs one request through the pipeline, the transport, and the
// failure policy. Queue replays re-enter here with IsRetry set.
func (c *Client) dispatch(ctx context.Context, d *Request) (*Response, error) {
	for {
		if err := c.requestChain.Run(ctx, d); err != nil {
			cerr := asClassified(err, d)

			// A refresh-gate rejection is flow control: the request joins
			// the queue and its caller blocks until the cycle resolves it.
			if cerr.Kind == classify.KindRefreshInProgress && !d.IsRetry {
				c.refreshMu.Lock()
				if !c.refreshing {
					// The cycle resolved between the gate check and here.
					c.refreshMu.Unlock()
					continue
				}
				pending := c.queue.Enqueue(d)
				c.refreshMu.Unlock()

				c.metricInc(MetricQueueEnqueued)
				return pending.Wait(ctx)
			}

			if cerr.Kind == classify.KindOffline {
				c.metricInc(MetricRequestOffline)
			}
			c.metricInc(MetricRequestFailure)
			c.notifyFailure(ctx, cerr)
			c.emitRequestAudit(ctx, d, 0, false, cerr)
			return nil, cerr
		}

		return c.send(ctx, d)
	}
}

// send issues the prepared descriptor and applies response policy.
func (c *Client) send(ctx context.Context, d *Request) (*Response, error) {
	resp, err := c.transport.Do(ctx, d)
	if err != nil {
		cerr := c.classifier.TransportError(d, err)
		if cerr.Kind == classify.KindOffline {
			c.metricInc(MetricRequestOffline)
		} else {
			c.metricInc(MetricUnclassifiedFailure)
		}
		c.metricInc(MetricRequestFailure)
		c.notifyFailure(ctx, cerr)
		c.emitRequestAudit(ctx, d, 0, false, cerr)
		return nil, cerr
	}

	if resp.StatusCode == http.StatusUnauthorized && d.NeedsAuth && !d.IsRetry {
		// Expired credential: enter (or join) the coordinated refresh cycle.
		return c.recover(ctx, d)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		cerr := c.classifier.Response(d, resp)
		switch cerr.Kind {
		case classify.KindKnownHTTP:
			c.metricInc(MetricKnownHTTPFailure)
		case classify.KindUnauthorized:
			// Replayed request failed again, or an unauthenticated route
			// returned 401. Propagate without a second recovery attempt.
		default:
			c.metricInc(MetricUnclassifiedFailure)
		}
		c.metricInc(MetricRequestFailure)
		c.notifyFailure(ctx, cerr)
		c.emitRequestAudit(ctx, d, resp.StatusCode, false, cerr)
		return nil, cerr
	}

	if err := c.responseChain.Run(ctx, d, resp); err != nil {
		cerr := asClassified(err, d)
		c.metricInc(MetricRequestFailure)
		c.notifyFailure(ctx, cerr)
		c.emitRequestAudit(ctx, d, resp.StatusCode, false, cerr)
		return nil, cerr
	}

	c.metricInc(MetricRequestSuccess)
	c.emitRequestAudit(ctx, d, resp.StatusCode, true, nil)
	return resp, nil
}

// notifyFailure surfaces a failure to the notifier exactly once. The
// handled flag on the error makes a repeat display impossible even when the
// same error value crosses multiple layers.
func (c *Client) notifyFailure(ctx context.Context, cerr *ClassifiedError) {
	if cerr == nil || cerr.Kind == classify.KindRefreshInProgress {
		return
	}
	if !cerr.MarkHandled() {
		return
	}
	if c.notifier == nil {
		return
	}

	c.notifier.Notify(ctx, cerr.Message)
	c.metricInc(MetricNotificationShown)
	c.emitAudit(ctx, internalaudit.Event{
		EventType: internalaudit.EventNotification,
		TraceID:   cerr.TraceID,
		Kind:      cerr.Kind.String(),
		Success:   true,
	})
}

// SetCredential describes the setcredential operation and its observable behavior.
//
// SetCredential may return an error when input validation, dependency calls, or transport checks fail.
// SetCredential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) SetCredential(ctx context.Context, accessToken, refreshToken string) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}
	if accessToken == "" || refreshToken == "" {
		return ErrNoCredential
	}

	expiry, err := jwt.DecodeExpiry(refreshToken)
	if err != nil {
		return err
	}

	return credstore.Save(ctx, c.store, credstore.Credential{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		RefreshExpiry: expiry,
	})
}

// Credential describes the credential operation and its observable behavior.
//
// Credential may return an error when input validation, dependency calls, or transport checks fail.
// Credential does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Credential(ctx context.Context) (Credential, bool, error) {
	if c == nil || c.store == nil {
		return Credential{}, false, ErrClientNotReady
	}
	return credstore.Load(ctx, c.store)
}

// AuthHeader reports the configured credential header name.
func (c *Client) AuthHeader() string {
	if c == nil {
		return ""
	}
	return c.config.Headers.AuthHeader
}

// LoggedIn describes the loggedin operation and its observable behavior.
//
// LoggedIn may return an error when input validation, dependency calls, or transport checks fail.
// LoggedIn does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) LoggedIn(ctx context.Context) bool {
	if c == nil || c.store == nil {
		return false
	}
	flag, ok, err := c.store.Get(ctx, credstore.KeyLoggedIn)
	return err == nil && ok && flag == "1"
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or transport checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}

	err := credstore.Clear(ctx, c.store)
	c.emitAudit(ctx, internalaudit.Event{
		EventType: internalaudit.EventForcedLogout,
		Success:   err == nil,
		Metadata:  map[string]string{"reason": "logout"},
	})
	return err
}

func (c *Client) emitRequestAudit(ctx context.Context, d *Request, status int, success bool, cerr *ClassifiedError) {
	if c == nil || c.audit == nil {
		return
	}

	event := internalaudit.Event{
		EventType: internalaudit.EventRequest,
		Method:    d.Method,
		Endpoint:  d.URL,
		Status:    status,
		TraceID:   d.TraceID,
		Success:   success,
	}
	if cerr != nil {
		event.Kind = cerr.Kind.String()
		event.Error = cerr.Message
	}
	c.emitAudit(ctx, event)
}

func (c *Client) emitAudit(ctx context.Context, event internalaudit.Event) {
	if c == nil || c.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	c.audit.Emit(ctx, event)
}

// asClassified normalizes a pipeline error into a tagged error. Stages
// already return tagged errors; anything else degrades to unclassified.
func asClassified(err error, d *Request) *ClassifiedError {
	var cerr *ClassifiedError
	if errors.As(err, &cerr) {
		return cerr
	}
	return &ClassifiedError{
		Kind:    classify.KindUnclassified,
		Message: classify.GenericMessage,
		TraceID: d.TraceID,
		Cause:   err,
	}
}
