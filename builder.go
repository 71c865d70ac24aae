package loomclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/loomlane/loomclient/gateway"
	"github.com/loomlane/loomclient/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by loomclient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config  Config
	storage session.Storage
	redis   *redis.Client

	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.config.API.HTTPClient = client
	return b
}

// WithStorage sets the durable session backend directly.
func (b *Builder) WithStorage(storage session.Storage) *Builder {
	b.storage = storage
	return b
}

// WithSessionFile is shorthand for a file-backed session slot at path.
func (b *Builder) WithSessionFile(path string) *Builder {
	b.storage = session.NewFileStorage(path)
	return b
}

// WithRedis is shorthand for a Redis-backed session slot using the
// configured key and TTL.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build validates the configuration, assembles the gateway and session
// store, and loads any previously persisted session into memory so a
// restarted process resumes its login.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	storage := b.storage
	if b.redis != nil {
		if storage != nil {
			return nil, errors.New("WithRedis and WithStorage are mutually exclusive")
		}
		storage = session.NewRedisStorage(b.redis, b.config.Session.RedisKey, b.config.Session.RedisTTL)
	}

	store := session.NewStore(storage)

	client := &Client{
		config:   b.config,
		sessions: store,
		metrics:  NewMetrics(b.config.Metrics),
		audit:    newAuditDispatcher(b.config.Audit, b.auditSink),
	}

	gw := gateway.New(gateway.Config{
		BaseURL:    b.config.API.BaseURL,
		HTTPClient: httpClient(b.config.API),
		UserAgent:  b.config.API.UserAgent,
	}, store)
	gw.OnCoalesced = func(key string) {
		client.metricInc(MetricDedupeCoalesced)
		client.emitAudit(AuditEvent{EventType: auditEventDedupeShared, Path: key, Success: true})
	}
	client.gateway = gw

	// Resume the persisted login, if one exists. Failures fail soft: a
	// corrupt or unreachable slot just starts the client logged out.
	if sess, err := store.Load(context.Background()); err == nil {
		client.user = &sess
	}

	b.built = true

	return client, nil
}

func httpClient(cfg APIConfig) *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{Timeout: cfg.RequestTimeout}
}
