package loomclient

import (
	"net/http"
	"net/url"
	"time"
)

// Config defines a public type used by loomclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API      APIConfig
	Session  SessionConfig
	Recovery RecoveryConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by loomclient APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	HTTPClient     *http.Client
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by loomclient APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RedisKey and RedisTTL apply when the session slot is Redis-backed via
	// Builder.WithRedis.
	RedisKey string
	RedisTTL time.Duration
}

/*
====================================
RECOVERY CONFIG
====================================
*/

// RecoveryConfig defines a public type used by loomclient APIs.
//
// RecoveryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RecoveryConfig struct {
	ResendCooldown time.Duration
	RedirectDelay  time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by loomclient APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by loomclient APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			RequestTimeout: 30 * time.Second,
			UserAgent:      "loomclient/1",
		},
		Session: SessionConfig{
			RedisKey: "lc:session",
		},
		Recovery: RecoveryConfig{
			ResendCooldown: 60 * time.Second,
			RedirectDelay:  2 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.API.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if _, err := url.Parse(cfg.API.BaseURL); err != nil {
		return err
	}
	return nil
}
