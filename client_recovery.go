package loomclient

import (
	"context"
	"net/http"

	"github.com/loomlane/loomclient/recovery"
)

// ValidationError is re-exported so callers can match client-side
// precondition failures from any part of the library with one type.
type ValidationError = recovery.ValidationError

// RecoveryOptions carries the caller-owned hooks for a recovery flow.
type RecoveryOptions struct {
	// OnRedirect fires after the post-success delay; the storefront uses it
	// to navigate back to the login entry point.
	OnRedirect func()
	// OnCooldownTick reports the remaining resend-cooldown seconds once per
	// second while the flow waits in VERIFY.
	OnCooldownTick func(remaining int)
}

// NewRecoveryFlow describes the newrecoveryflow operation and its observable behavior.
//
// NewRecoveryFlow builds a password-recovery state machine wired to this
// client's gateway, message-extraction policy, audit trail, and metrics.
// The flow is unauthenticated and independent of the session store; the
// caller owns the flow and must Close it on teardown.
func (c *Client) NewRecoveryFlow(opts RecoveryOptions) *recovery.Flow {
	return recovery.New(recoveryPoster{client: c}, recovery.Config{
		ResendCooldown: c.config.Recovery.ResendCooldown,
		RedirectDelay:  c.config.Recovery.RedirectDelay,
		ExtractMessage: ErrorMessage,
		OnRedirect:     opts.OnRedirect,
		OnCooldownTick: opts.OnCooldownTick,
		OnTransition: func(from, to recovery.Step) {
			c.observeRecoveryTransition(from, to)
		},
	})
}

func (c *Client) observeRecoveryTransition(from, to recovery.Step) {
	switch to {
	case recovery.StepVerify:
		c.metricInc(MetricRecoveryRequest)
	case recovery.StepReset:
		c.metricInc(MetricRecoveryVerifySuccess)
	case recovery.StepSuccess:
		c.metricInc(MetricRecoveryConfirmSuccess)
	}
	c.emitAudit(AuditEvent{
		EventType: auditEventRecoveryStep,
		Success:   true,
		Metadata:  map[string]string{"from": string(from), "to": string(to)},
	})
}

// recoveryPoster adapts the gateway to the recovery package's narrow
// network surface and records server-side rejections, which never produce a
// step transition.
type recoveryPoster struct {
	client *Client
}

func (p recoveryPoster) Post(ctx context.Context, path string, body, out any) error {
	err := p.client.gateway.Do(ctx, http.MethodPost, path, body, nil, out)
	if err != nil {
		switch path {
		case "/auth/password-reset/verify/":
			p.client.metricInc(MetricRecoveryVerifyFailure)
		case "/auth/password-reset/confirm/":
			p.client.metricInc(MetricRecoveryConfirmFailure)
		}
	}
	return err
}
