package rate

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned by CheckRefresh when the attempt ceiling is
// exceeded inside the window. The coordinator maps it to forced logout.
var ErrRateLimited = errors.New("refresh rate limited")

// Config holds refresh limiter tuning parameters.
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

// Limiter tracks refresh attempts within a resetting window.
type Limiter struct {
	mu          sync.Mutex
	config      Config
	attempts    int
	windowStart time.Time

	now func() time.Time
}

// New creates a refresh attempt Limiter.
func New(cfg Config) *Limiter {
	return &Limiter{
		config: cfg,
		now:    time.Now,
	}
}

// NewWithClock creates a Limiter with an injected clock for tests.
func NewWithClock(cfg Config, now func() time.Time) *Limiter {
	l := New(cfg)
	l.now = now
	return l
}

// CheckRefresh records one refresh trigger. It returns nil while the attempt
// is within budget, or [ErrRateLimited] when the ceiling is exceeded. A
// tripped limiter resets its counter and window immediately so the next
// window starts clean.
func (l *Limiter) CheckRefresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.config.Window {
		l.attempts = 0
		l.windowStart = now
	}

	l.attempts++
	if l.attempts > l.config.MaxAttempts {
		l.attempts = 0
		l.windowStart = now
		return ErrRateLimited
	}

	return nil
}

// Attempts returns the counter value inside the current window.
func (l *Limiter) Attempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

// Reset clears the counter and window, e.g. after an explicit logout.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts = 0
	l.windowStart = time.Time{}
}
