package loomclient

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/loomlane/loomclient/gateway"
	"github.com/loomlane/loomclient/session"
)

// Register describes the register operation and its observable behavior.
//
// Register posts the new-account data and returns a success signal only: it
// never establishes a session. Seller and designer accounts await admin
// approval, and buyers log in explicitly.
func (c *Client) Register(ctx context.Context, input RegisterInput) error {
	c.mu.Lock()
	c.auth = OperationStatus{State: StateLoading}
	c.mu.Unlock()

	err := c.gateway.Do(ctx, http.MethodPost, "/auth/register/", input, nil, nil)

	c.mu.Lock()
	c.user = nil
	if err != nil {
		c.auth = OperationStatus{State: StateFailed, Error: ErrorMessage(err)}
	} else {
		c.auth = OperationStatus{State: StateSucceeded, Message: "Registration successful"}
	}
	c.mu.Unlock()

	if err != nil {
		c.metricInc(MetricRegisterFailure)
		c.emitAudit(AuditEvent{EventType: auditEventRegister, Email: input.Email, Error: ErrorMessage(err)})
		return err
	}
	c.metricInc(MetricRegisterSuccess)
	c.emitAudit(AuditEvent{EventType: auditEventRegister, Email: input.Email, Success: true})
	return nil
}

// Login describes the login operation and its observable behavior.
//
// Login posts the credentials (identifier may be an email address or a
// username; captcha is optional) and, on success, normalizes and persists
// the session including the access and refresh tokens the server returned.
// On failure the transient user state is cleared and the server-reported
// message lands in the auth status slot.
func (c *Client) Login(ctx context.Context, identifier, password, captcha string) (session.Session, error) {
	c.mu.Lock()
	c.auth = OperationStatus{State: StateLoading}
	c.mu.Unlock()

	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}
	if captcha != "" {
		body["captcha"] = captcha
	}

	var resp struct {
		Access  string          `json:"access"`
		Refresh string          `json:"refresh"`
		User    session.Session `json:"user"`
	}
	err := c.gateway.Do(ctx, http.MethodPost, "/auth/login/", body, nil, &resp)
	if err == nil {
		sess := resp.User
		sess.AccessToken = resp.Access
		sess.RefreshToken = resp.Refresh
		err = c.sessions.Persist(ctx, sess)
	}

	if err != nil {
		msg := ErrorMessage(err)
		c.mu.Lock()
		c.user = nil
		c.auth = OperationStatus{State: StateFailed, Error: msg}
		c.mu.Unlock()
		c.metricInc(MetricLoginFailure)
		c.emitAudit(AuditEvent{EventType: auditEventLogin, Email: identifier, Error: msg})
		return session.Session{}, err
	}

	normalized, _ := c.sessions.Current()
	c.mu.Lock()
	c.user = &normalized
	c.auth = OperationStatus{State: StateSucceeded}
	c.mu.Unlock()

	c.metricInc(MetricLoginSuccess)
	c.emitAudit(AuditEvent{
		EventType: auditEventLogin,
		UserID:    strconv.FormatInt(normalized.UserID, 10),
		Email:     identifier,
		Success:   true,
	})
	return normalized, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout clears the in-memory user and the durable session slot. No network
// call is involved; the only failure mode is the storage backend itself.
func (c *Client) Logout(ctx context.Context) error {
	userID := c.currentUserID()

	c.mu.Lock()
	c.user = nil
	c.mu.Unlock()

	err := c.sessions.Clear(ctx)

	c.metricInc(MetricLogout)
	c.metricInc(MetricSessionCleared)
	c.emitAudit(AuditEvent{EventType: auditEventLogout, UserID: userID, Success: err == nil})
	return err
}

// RefreshProfile describes the refreshprofile operation and its observable behavior.
//
// RefreshProfile reads the caller's own profile and merges it into the
// session, carrying the stored tokens forward since the profile endpoint
// does not echo them. The profile status slot deliberately has no loading
// transition for refreshes; it only records failures, and a later success
// returns a failed slot to idle. A 401 clears the in-memory user only when
// no durable session exists — an established session is never torn down by
// a failed refresh.
func (c *Client) RefreshProfile(ctx context.Context) (session.Session, error) {
	var fresh session.Session
	err := c.gateway.Do(ctx, http.MethodGet, "/auth/me/", nil, nil, &fresh)
	if err != nil {
		msg := ErrorMessage(err)
		c.mu.Lock()
		c.profile.State = StateFailed
		c.profile.Error = msg
		c.profile.Message = ""
		c.mu.Unlock()

		if errors.Is(err, gateway.ErrUnauthorized) && !c.sessions.HasDurable(ctx) {
			c.mu.Lock()
			c.user = nil
			c.mu.Unlock()
			c.metricInc(MetricSessionCleared)
			c.emitAudit(AuditEvent{EventType: auditEventSessionCleared, Error: msg})
		}

		c.metricInc(MetricProfileRefreshFailure)
		c.emitAudit(AuditEvent{EventType: auditEventProfileRefresh, Error: msg})
		return session.Session{}, err
	}

	normalized, err := c.persistMerged(ctx, fresh)
	if err != nil {
		return session.Session{}, err
	}

	c.mu.Lock()
	c.profile.Error = ""
	if c.profile.State == StateFailed {
		c.profile.State = StateIdle
	}
	c.mu.Unlock()

	c.metricInc(MetricProfileRefreshSuccess)
	c.emitAudit(AuditEvent{
		EventType: auditEventProfileRefresh,
		UserID:    strconv.FormatInt(normalized.UserID, 10),
		Success:   true,
	})
	return normalized, nil
}

// UpdateProfile describes the updateprofile operation and its observable behavior.
//
// UpdateProfile patches the profile as JSON and tracks the result in its own
// status slot, independent of the password slot. Success re-normalizes and
// persists the session with the stored tokens preserved. Calling it without
// a logged-in user fails client-side with ErrNotLoggedIn.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (session.Session, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return session.Session{}, ErrNotLoggedIn
	}
	c.profile = OperationStatus{State: StateLoading}
	c.mu.Unlock()

	var fresh session.Session
	err := c.gateway.Do(ctx, http.MethodPatch, "/auth/me/", update, nil, &fresh)
	return c.finishProfileUpdate(ctx, fresh, err)
}

// UpdateProfileMultipart describes the updateprofilemultipart operation and its observable behavior.
//
// UpdateProfileMultipart is the avatar-upload variant: the form owns the
// multipart boundary, so it bypasses the JSON request path.
func (c *Client) UpdateProfileMultipart(ctx context.Context, form *gateway.MultipartForm) (session.Session, error) {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return session.Session{}, ErrNotLoggedIn
	}
	c.profile = OperationStatus{State: StateLoading}
	c.mu.Unlock()

	var fresh session.Session
	err := c.gateway.DoMultipart(ctx, http.MethodPatch, "/auth/me/", form, &fresh)
	return c.finishProfileUpdate(ctx, fresh, err)
}

func (c *Client) finishProfileUpdate(ctx context.Context, fresh session.Session, err error) (session.Session, error) {
	if err != nil {
		msg := ErrorMessage(err)
		c.mu.Lock()
		c.profile = OperationStatus{State: StateFailed, Error: msg}
		c.mu.Unlock()
		c.metricInc(MetricProfileUpdateFailure)
		c.emitAudit(AuditEvent{EventType: auditEventProfileUpdate, Error: msg})
		return session.Session{}, err
	}

	normalized, err := c.persistMerged(ctx, fresh)
	if err != nil {
		c.mu.Lock()
		c.profile = OperationStatus{State: StateFailed, Error: err.Error()}
		c.mu.Unlock()
		return session.Session{}, err
	}

	c.mu.Lock()
	c.profile = OperationStatus{State: StateSucceeded, Message: "Profile updated successfully"}
	c.mu.Unlock()

	c.metricInc(MetricProfileUpdateSuccess)
	c.emitAudit(AuditEvent{
		EventType: auditEventProfileUpdate,
		UserID:    strconv.FormatInt(normalized.UserID, 10),
		Success:   true,
	})
	return normalized, nil
}

// persistMerged folds a fresh profile payload into the current session and
// persists the result.
func (c *Client) persistMerged(ctx context.Context, fresh session.Session) (session.Session, error) {
	c.mu.Lock()
	var prev session.Session
	if c.user != nil {
		prev = *c.user
	}
	c.mu.Unlock()

	merged := session.MergeTokens(prev, fresh)
	if err := c.sessions.Persist(ctx, merged); err != nil {
		return session.Session{}, err
	}

	normalized, _ := c.sessions.Current()
	c.mu.Lock()
	c.user = &normalized
	c.mu.Unlock()
	return normalized, nil
}

// ChangePassword describes the changepassword operation and its observable behavior.
//
// ChangePassword swaps the credential and tracks the result in its own
// status slot. Success never alters the session.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return ErrNotLoggedIn
	}
	c.password = OperationStatus{State: StateLoading}
	c.mu.Unlock()

	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	var resp struct {
		Message string `json:"message"`
	}
	err := c.gateway.Do(ctx, http.MethodPost, "/auth/change-password/", body, nil, &resp)
	if err != nil {
		msg := ErrorMessage(err)
		c.mu.Lock()
		c.password = OperationStatus{State: StateFailed, Error: msg}
		c.mu.Unlock()
		c.metricInc(MetricPasswordChangeFailure)
		c.emitAudit(AuditEvent{EventType: auditEventPasswordChange, Error: msg})
		return err
	}

	message := resp.Message
	if message == "" {
		message = "Password updated successfully"
	}
	c.mu.Lock()
	c.password = OperationStatus{State: StateSucceeded, Message: message}
	c.mu.Unlock()

	c.metricInc(MetricPasswordChangeSuccess)
	c.emitAudit(AuditEvent{EventType: auditEventPasswordChange, UserID: c.currentUserID(), Success: true})
	return nil
}
