package goAuthClient

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config defines a public type used by goAuthClient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Transport TransportConfig
	Refresh   RefreshConfig
	RateLimit RateLimitConfig
	Headers   HeadersConfig
	Pipeline  PipelineConfig
	Audit     AuditConfig
	Metrics   MetricsConfig

	// StatusMessages overrides or extends the canned message table used to
	// classify non-401 HTTP failures. Keys are HTTP status codes.
	StatusMessages map[int]string
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig defines a public type used by goAuthClient APIs.
//
// TransportConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TransportConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client-side throttling
	Burst             int
	HTTPClient        *http.Client
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig defines a public type used by goAuthClient APIs.
//
// RefreshConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RefreshConfig struct {
	Endpoint           string
	AccessTokenHeader  string
	RefreshTokenHeader string
}

// RateLimitConfig bounds how many refresh cycles may start inside one
// resetting window. Exceeding the ceiling forces a logout.
type RateLimitConfig struct {
	MaxAttempts int
	Window      time.Duration
}

/*
====================================
HEADERS CONFIG
====================================
*/

// HeadersConfig defines a public type used by goAuthClient APIs.
//
// HeadersConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HeadersConfig struct {
	AuthHeader     string
	LocaleHeader   string
	CurrencyHeader string
}

/*
====================================
PIPELINE CONFIG
====================================
*/

// PipelineConfig defines a public type used by goAuthClient APIs.
//
// PipelineConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PipelineConfig struct {
	// KeepTemplateFields leaves body fields in place after they were
	// substituted into a URL template instead of removing them.
	KeepTemplateFields bool
}

// AuditConfig defines a public type used by goAuthClient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goAuthClient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			Timeout:           10 * time.Minute,
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Refresh: RefreshConfig{
			Endpoint:           "/auth/refresh",
			AccessTokenHeader:  "x-access-token",
			RefreshTokenHeader: "x-refresh-token",
		},
		RateLimit: RateLimitConfig{
			MaxAttempts: 5,
			Window:      60 * time.Second,
		},
		Headers: HeadersConfig{
			AuthHeader:     "x-access-token",
			LocaleHeader:   "x-locale",
			CurrencyHeader: "currency",
		},
		Pipeline: PipelineConfig{
			KeepTemplateFields: false,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if len(cfg.StatusMessages) > 0 {
		out.StatusMessages = make(map[int]string, len(cfg.StatusMessages))
		for code, msg := range cfg.StatusMessages {
			out.StatusMessages[code] = msg
		}
	}
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or transport checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Transport
	if c.Transport.Timeout <= 0 {
		return errors.New("Transport Timeout must be > 0")
	}
	if c.Transport.RequestsPerSecond < 0 {
		return errors.New("Transport RequestsPerSecond must be >= 0")
	}
	if c.Transport.RequestsPerSecond > 0 && c.Transport.Burst <= 0 {
		return errors.New("Transport Burst must be > 0 when throttling is enabled")
	}

	// Refresh
	if c.Refresh.Endpoint == "" {
		return errors.New("Refresh Endpoint is required")
	}
	if !strings.HasPrefix(c.Refresh.Endpoint, "/") {
		return errors.New("Refresh Endpoint must be an absolute path")
	}
	if c.Refresh.AccessTokenHeader == "" {
		return errors.New("Refresh AccessTokenHeader is required")
	}
	if c.Refresh.RefreshTokenHeader == "" {
		return errors.New("Refresh RefreshTokenHeader is required")
	}

	// Rate limit
	if c.RateLimit.MaxAttempts <= 0 {
		return errors.New("RateLimit MaxAttempts must be > 0")
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RateLimit Window must be > 0")
	}

	// Headers
	if c.Headers.AuthHeader == "" {
		return errors.New("Headers AuthHeader is required")
	}
	if c.Headers.LocaleHeader == "" {
		return errors.New("Headers LocaleHeader is required")
	}
	if c.Headers.CurrencyHeader == "" {
		return errors.New("Headers CurrencyHeader is required")
	}

	// Status messages
	for code := range c.StatusMessages {
		if code < 100 || code > 599 {
			return errors.New("StatusMessages keys must be valid HTTP status codes")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
