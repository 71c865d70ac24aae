package loomclient

import (
	"strconv"
	"sync"
	"time"

	"github.com/loomlane/loomclient/gateway"
	"github.com/loomlane/loomclient/session"
)

// Client defines a public type used by loomclient APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config   Config
	gateway  *gateway.Gateway
	sessions *session.Store
	audit    *auditDispatcher
	metrics  *Metrics

	mu       sync.Mutex
	user     *session.Session
	auth     OperationStatus
	profile  OperationStatus
	password OperationStatus
}

// Close describes the close operation and its observable behavior.
//
// Close flushes and stops the audit dispatcher. It never touches the
// session: closing the client is not a logout.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// Gateway returns the client's request gateway for callers that need raw
// access to the API surface.
func (c *Client) Gateway() *gateway.Gateway {
	return c.gateway
}

// Sessions returns the session store backing this client.
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// Session returns the in-memory session, if a user is logged in.
func (c *Client) Session() (session.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return session.Session{}, false
	}
	return *c.user, true
}

// AuthStatus returns the shared register/login status slot.
func (c *Client) AuthStatus() OperationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth
}

// ProfileStatus returns the profile-mutation status slot.
func (c *Client) ProfileStatus() OperationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// PasswordStatus returns the password-change status slot. It never shares
// state with the profile slot.
func (c *Client) PasswordStatus() OperationStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.password
}

// ResetStatuses returns every operation status slot to idle without touching
// the session, mirroring the storefront's form-reset action.
func (c *Client) ResetStatuses() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = OperationStatus{}
	c.profile = OperationStatus{}
	c.password = OperationStatus{}
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return c.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) emitAudit(event AuditEvent) {
	if c == nil || c.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	c.audit.Emit(event)
}

func (c *Client) currentUserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return ""
	}
	return strconv.FormatInt(c.user.UserID, 10)
}
