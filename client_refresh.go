package goAuthClient

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/MrEthical07/goAuthClient/credstore"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/flows"
	"github.com/MrEthical07/goAuthClient/internal/request"
	"github.com/MrEthical07/goAuthClient/jwt"
)

// recover is the single entry point for unauthorized responses on
// authenticated requests. Under the state lock, exactly one caller flips the
// client from Idle to Refreshing and owns the cycle; every other caller
// enqueues and waits. The triggering request is enqueued first, so it is
// replayed first after the refresh persists.
func (c *Client) recover(ctx context.Context, d *Request) (*Response, error) {
	c.refreshMu.Lock()
	if c.refreshing {
		pending := c.queue.Enqueue(d)
		c.refreshMu.Unlock()

		c.metricInc(MetricQueueEnqueued)
		return pending.Wait(ctx)
	}

	c.refreshing = true
	pending := c.queue.Enqueue(d)
	c.refreshMu.Unlock()

	c.metricInc(MetricQueueEnqueued)
	c.metricInc(MetricRefreshTriggered)

	c.runRefreshCycle(ctx)

	return pending.Wait(ctx)
}

// runRefreshCycle executes one refresh and resolves the queue. The client
// always returns to Idle, whatever the outcome.
func (c *Client) runRefreshCycle(ctx context.Context) {
	result := flows.RunRefresh(ctx, flows.RefreshDeps{
		CheckRate: c.limiter.CheckRefresh,
		CurrentTokens: func(ctx context.Context) (string, string, error) {
			cred, ok, err := credstore.Load(ctx, c.store)
			if err != nil || !ok {
				return "", "", err
			}
			return cred.AccessToken, cred.RefreshToken, nil
		},
		CallRefresh:  c.callRefresh,
		DecodeExpiry: jwt.DecodeExpiry,
		Persist: func(ctx context.Context, access, refresh string, expiry time.Time) error {
			return credstore.Save(ctx, c.store, credstore.Credential{
				AccessToken:   access,
				RefreshToken:  refresh,
				RefreshExpiry: expiry,
			})
		},
		Warn: log.Printf,
	})

	if result.Failure == flows.RefreshFailureNone {
		c.metricInc(MetricRefreshSuccess)
		c.emitAudit(ctx, internalaudit.Event{
			EventType: internalaudit.EventRefresh,
			Success:   true,
		})
		c.drainQueue(ctx)
		return
	}

	c.failRefresh(ctx, result)
}

// drainQueue replays every queued request in enqueue order and returns the
// client to Idle. The state lock is held for the whole drain: requests
// arriving meanwhile block at the refresh gate and run only once the queue
// is empty, so they can never overtake a queued request.
func (c *Client) drainQueue(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.queue.Drain(ctx, func(ctx context.Context, rd *request.Descriptor) (*request.Response, error) {
		c.metricInc(MetricQueueReplayed)
		return c.dispatch(ctx, rd)
	})
	c.refreshing = false
}

// failRefresh clears the stored credential, rejects the queue, and surfaces
// one notification. Every refresh failure is a forced logout: a client that
// cannot rotate its tokens has no usable session left.
func (c *Client) failRefresh(ctx context.Context, result flows.RefreshResult) {
	var cycleErr error
	switch result.Failure {
	case flows.RefreshFailureRateLimited:
		c.metricInc(MetricRefreshRateLimited)
		cycleErr = ErrRefreshRateLimited
	case flows.RefreshFailureNoCredential:
		c.metricInc(MetricRefreshFailure)
		cycleErr = ErrNoCredential
	default:
		c.metricInc(MetricRefreshFailure)
		cycleErr = ErrRefreshFailed
	}
	if result.Err != nil {
		cycleErr = errors.Join(cycleErr, result.Err)
	}
	rejectErr := errors.Join(ErrForcedLogout, cycleErr)

	if err := credstore.Clear(ctx, c.store); err != nil {
		log.Printf("goAuthClient: credential clear failed during forced logout: %v", err)
	}
	c.metricInc(MetricForcedLogout)

	c.refreshMu.Lock()
	rejected := c.queue.Len()
	c.queue.RejectAll(rejectErr)
	c.refreshing = false
	c.refreshMu.Unlock()

	for i := 0; i < rejected; i++ {
		c.metricInc(MetricQueueRejected)
	}

	c.emitAudit(ctx, internalaudit.Event{
		EventType: internalaudit.EventRefresh,
		Success:   false,
		Error:     cycleErr.Error(),
	})
	if rejected > 0 {
		c.emitAudit(ctx, internalaudit.Event{
			EventType: internalaudit.EventQueueRejected,
			Success:   false,
			Error:     cycleErr.Error(),
			Metadata:  map[string]string{"rejected": fmt.Sprintf("%d", rejected)},
		})
	}
	c.emitAudit(ctx, internalaudit.Event{
		EventType: internalaudit.EventForcedLogout,
		Success:   true,
		Metadata:  map[string]string{"rejected": fmt.Sprintf("%d", rejected)},
	})

	if c.notifier != nil {
		message := c.classifier.Message(http.StatusUnauthorized)
		if message == "" {
			message = "Your session has expired. Please log in again."
		}
		c.notifier.Notify(ctx, message)
		c.metricInc(MetricNotificationShown)
	}
}

// callRefresh issues the one transport call of the cycle. The refresh
// endpoint is a fixed GET carrying both tokens as headers; the rotated pair
// comes back on the response headers.
func (c *Client) callRefresh(ctx context.Context, access, refresh string) (string, string, error) {
	d := request.New(http.MethodGet, c.config.Refresh.Endpoint)
	d.NeedsAuth = false
	d.SetHeader(c.config.Refresh.AccessTokenHeader, access)
	d.SetHeader(c.config.Refresh.RefreshTokenHeader, refresh)

	resp, err := c.transport.Do(ctx, d)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	return resp.Header(c.config.Refresh.AccessTokenHeader), resp.Header(c.config.Refresh.RefreshTokenHeader), nil
}
