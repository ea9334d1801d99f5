package goAuthClient

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goAuthClient/credstore"
	internalaudit "github.com/MrEthical07/goAuthClient/internal/audit"
	"github.com/MrEthical07/goAuthClient/internal/classify"
	"github.com/MrEthical07/goAuthClient/internal/pipeline"
	"github.com/MrEthical07/goAuthClient/internal/queue"
	"github.com/MrEthical07/goAuthClient/internal/rate"
	internaltransport "github.com/MrEthical07/goAuthClient/internal/transport"
)

// ResponseStage is a named post-processing hook applied to successful
// responses, in registration order.
type ResponseStage = pipeline.ResponseStage

// Builder defines a public type used by goAuthClient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	transport Transport
	redis     redis.UniversalClient
	store     credstore.Store
	prefs     PreferenceStore
	notifier  Notifier
	auditSink AuditSink
	online    func() bool

	responseStages []ResponseStage

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or transport checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or transport checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL may return an error when input validation, dependency calls, or transport checks fail.
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Transport.BaseURL = baseURL
	return b
}

// WithTransport describes the withtransport operation and its observable behavior.
//
// WithTransport may return an error when input validation, dependency calls, or transport checks fail.
// WithTransport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTransport(t Transport) *Builder {
	b.transport = t
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or transport checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or transport checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithPreferences describes the withpreferences operation and its observable behavior.
//
// WithPreferences may return an error when input validation, dependency calls, or transport checks fail.
// WithPreferences does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPreferences(prefs PreferenceStore) *Builder {
	b.prefs = prefs
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
//
// WithNotifier may return an error when input validation, dependency calls, or transport checks fail.
// WithNotifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or transport checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or transport checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or transport checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithConnectivityProbe describes the withconnectivityprobe operation and its observable behavior.
//
// WithConnectivityProbe may return an error when input validation, dependency calls, or transport checks fail.
// WithConnectivityProbe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConnectivityProbe(online func() bool) *Builder {
	b.online = online
	return b
}

// WithResponseStage describes the withresponsestage operation and its observable behavior.
//
// WithResponseStage may return an error when input validation, dependency calls, or transport checks fail.
// WithResponseStage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithResponseStage(stage ResponseStage) *Builder {
	b.responseStages = append(b.responseStages, stage)
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or transport checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := b.transport
	if transport == nil {
		if cfg.Transport.BaseURL == "" {
			return nil, ErrTransportMissing
		}
		transport = internaltransport.NewHTTP(internaltransport.Config{
			BaseURL:           cfg.Transport.BaseURL,
			Timeout:           cfg.Transport.Timeout,
			RequestsPerSecond: cfg.Transport.RequestsPerSecond,
			Burst:             cfg.Transport.Burst,
			HTTPClient:        cfg.Transport.HTTPClient,
		})
	}

	store := b.store
	if store == nil {
		if b.redis != nil {
			store = credstore.NewRedis(b.redis, "")
		} else {
			store = credstore.NewMemory()
		}
	}

	// Config overrides are layered on top of the built-in status table.
	messages := classify.DefaultStatusMessages()
	for code, msg := range cfg.StatusMessages {
		messages[code] = msg
	}

	c := &Client{
		config:     cfg,
		transport:  transport,
		store:      store,
		prefs:      b.prefs,
		notifier:   b.notifier,
		online:     b.online,
		classifier: classify.New(messages, b.online),
		limiter: rate.New(rate.Config{
			MaxAttempts: cfg.RateLimit.MaxAttempts,
			Window:      cfg.RateLimit.Window,
		}),
		queue: queue.New(),
		audit: internalaudit.NewDispatcher(internalaudit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
	}

	prefs := contextPreferenceSource{store: b.prefs}

	c.requestChain = pipeline.NewChain(
		pipeline.Connectivity(b.online),
		pipeline.RefreshGate(c.isRefreshing),
		pipeline.AuthPrecondition(c.accessToken),
		pipeline.Template(cfg.Pipeline.KeepTemplateFields),
		pipeline.RouteParams(),
		pipeline.PreferenceHeaders(prefs, cfg.Headers.LocaleHeader, cfg.Headers.CurrencyHeader),
		pipeline.CredentialHeader(c.accessToken, cfg.Headers.AuthHeader),
	)
	c.responseChain = pipeline.NewResponseChain(b.responseStages...)

	b.built = true

	return c, nil
}
