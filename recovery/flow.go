// Package recovery implements the password-recovery state machine of the
// storefront: OTP request, verification, and the final credential reset,
// with a resend cooldown and a post-success redirect. The flow talks to the
// API unauthenticated and is independent of the session store.
package recovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Step identifies the current state of a Flow.
type Step string

const (
	// StepRequest is an exported constant or variable used by the storefront client.
	StepRequest Step = "REQUEST"
	// StepVerify is an exported constant or variable used by the storefront client.
	StepVerify Step = "VERIFY"
	// StepReset is an exported constant or variable used by the storefront client.
	StepReset Step = "RESET"
	// StepSuccess is an exported constant or variable used by the storefront client.
	StepSuccess Step = "SUCCESS"
)

// OTPDigits is the exact code length the verify endpoint accepts.
const OTPDigits = 6

// Poster is the slice of the request gateway the flow needs: an
// unauthenticated JSON POST.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// ValidationError is a client-side precondition failure: the input never
// reached the network.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return "recovery: invalid " + e.Field + ": " + e.Msg
}

// Config defines a public type used by loomclient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// ResendCooldown is the minimum wait before a code may be reissued.
	// Defaults to 60 seconds.
	ResendCooldown time.Duration
	// RedirectDelay is how long the terminal SUCCESS state lingers before
	// OnRedirect fires. Defaults to 2 seconds.
	RedirectDelay time.Duration
	// TickInterval drives OnCooldownTick. Defaults to 1 second.
	TickInterval time.Duration

	// Now is the flow's clock. Defaults to time.Now.
	Now func() time.Time

	// ExtractMessage turns a gateway error into the inline message shown for
	// the active step. Defaults to err.Error().
	ExtractMessage func(error) string

	// OnRedirect fires once, RedirectDelay after the flow reaches SUCCESS.
	OnRedirect func()
	// OnCooldownTick reports the remaining cooldown seconds once per tick
	// while the flow sits in VERIFY.
	OnCooldownTick func(remaining int)
	// OnTransition observes every step change, including the backward
	// change-email transition.
	OnTransition func(from, to Step)
}

// Flow defines a public type used by loomclient APIs.
//
// Flow is safe for concurrent use; operations serialize their state changes
// and an in-flight call whose flow was since reset or closed discards its
// result instead of reacting to it.
type Flow struct {
	cfg Config
	api Poster

	mu            sync.Mutex
	gen           uint64
	step          Step
	email         string
	otp           string
	resetToken    string
	message       string
	info          string
	cooldownUntil time.Time
	busy          bool

	cooldownStop  chan struct{}
	redirectTimer *time.Timer
	closed        bool
}

// New builds a Flow in the REQUEST step.
func New(api Poster, cfg Config) *Flow {
	if cfg.ResendCooldown <= 0 {
		cfg.ResendCooldown = 60 * time.Second
	}
	if cfg.RedirectDelay <= 0 {
		cfg.RedirectDelay = 2 * time.Second
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ExtractMessage == nil {
		cfg.ExtractMessage = func(err error) string { return err.Error() }
	}
	return &Flow{cfg: cfg, api: api, step: StepRequest}
}

// Step returns the current state.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email returns the address the flow is recovering.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// OTP returns the current code field value.
func (f *Flow) OTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otp
}

// ResetToken returns the short-lived token issued after verification. Empty
// until VERIFY succeeds.
func (f *Flow) ResetToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetToken
}

// Message returns the inline error for the active step, if any.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Info returns the informational banner for the active step, if any.
func (f *Flow) Info() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.info
}

// CooldownRemaining reports the whole seconds left before a resend is
// allowed, floored at zero.
func (f *Flow) CooldownRemaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cooldownRemainingLocked()
}

func (f *Flow) cooldownRemainingLocked() int {
	left := f.cooldownUntil.Sub(f.cfg.Now())
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// SetOTPInput applies the code-field input filter: values that are
// non-numeric or longer than six digits are rejected before they reach the
// field, so the field never holds one.
func (f *Flow) SetOTPInput(value string) {
	if len(value) > OTPDigits || !isDigits(value) {
		return
	}
	f.mu.Lock()
	f.otp = value
	f.message = ""
	f.mu.Unlock()
}

// RequestOTP submits the email and, on success, advances to VERIFY with a
// fresh resend cooldown and any previous reset token cleared. On failure the
// flow stays in REQUEST and surfaces the extracted message.
func (f *Flow) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	f.mu.Lock()
	if f.step != StepRequest {
		f.mu.Unlock()
		return &ValidationError{Field: "step", Msg: "otp already requested"}
	}
	if email == "" {
		f.message = "Please enter the email associated with your account."
		f.mu.Unlock()
		return &ValidationError{Field: "email", Msg: "email is required"}
	}
	f.email = email
	f.message = ""
	gen := f.gen
	f.busy = true
	f.mu.Unlock()

	err := f.api.Post(ctx, "/auth/password-reset/request/", map[string]string{"email": email}, nil)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.gen != gen {
		return err
	}
	if err != nil {
		f.message = f.cfg.ExtractMessage(err)
		return err
	}

	f.otp = ""
	f.resetToken = ""
	f.info = fmt.Sprintf("We sent a %d-digit code to %s. Check your inbox and spam folder.", OTPDigits, email)
	f.transitionLocked(StepVerify)
	f.startCooldownLocked()
	return nil
}

// VerifyOTP submits the code field. Submission requires exactly six digits;
// shorter input is rejected client-side without a network call. Success
// stores the issued reset token and advances to RESET; failure clears the
// code field for re-entry and stays in VERIFY.
func (f *Flow) VerifyOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.step != StepVerify {
		f.mu.Unlock()
		return &ValidationError{Field: "step", Msg: "no code is pending verification"}
	}
	otp := f.otp
	if len(otp) != OTPDigits {
		f.message = fmt.Sprintf("Enter the %d-digit code sent to your email.", OTPDigits)
		f.mu.Unlock()
		return &ValidationError{Field: "otp", Msg: "code must be exactly 6 digits"}
	}
	email := f.email
	f.message = ""
	gen := f.gen
	f.busy = true
	f.mu.Unlock()

	var resp struct {
		ResetToken string `json:"reset_token"`
	}
	err := f.api.Post(ctx, "/auth/password-reset/verify/", map[string]string{"email": email, "otp": otp}, &resp)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.gen != gen {
		return err
	}
	if err != nil {
		f.message = f.cfg.ExtractMessage(err)
		f.otp = ""
		return err
	}

	f.resetToken = resp.ResetToken
	f.otp = ""
	f.info = "OTP verified. You can now set a new password."
	f.stopCooldownLocked()
	f.transitionLocked(StepReset)
	return nil
}

// Resend reissues the code. It is only actionable in VERIFY once the
// cooldown has reached zero; success restarts the cooldown.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.step != StepVerify {
		f.mu.Unlock()
		return &ValidationError{Field: "step", Msg: "nothing to resend"}
	}
	if remaining := f.cooldownRemainingLocked(); remaining > 0 {
		f.mu.Unlock()
		return &ValidationError{Field: "cooldown", Msg: fmt.Sprintf("resend available in %ds", remaining)}
	}
	if f.busy {
		f.mu.Unlock()
		return &ValidationError{Field: "step", Msg: "a resend is already in flight"}
	}
	email := f.email
	f.message = ""
	gen := f.gen
	f.busy = true
	f.mu.Unlock()

	err := f.api.Post(ctx, "/auth/password-reset/request/", map[string]string{"email": email}, nil)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.gen != gen {
		return err
	}
	if err != nil {
		f.message = f.cfg.ExtractMessage(err)
		return err
	}

	f.info = "A fresh OTP was sent to " + email + "."
	f.startCooldownLocked()
	return nil
}

// ConfirmReset finalizes the credential replacement. A non-empty reset token
// is enforced as an invariant, not just a UI guard; the new password must be
// at least six characters and match its confirmation. Success advances to
// the terminal SUCCESS step and schedules the login redirect.
func (f *Flow) ConfirmReset(ctx context.Context, newPassword, confirmPassword string) error {
	f.mu.Lock()
	if f.step != StepReset {
		f.mu.Unlock()
		return &ValidationError{Field: "step", Msg: "otp has not been verified"}
	}
	if f.resetToken == "" {
		f.message = "Please verify the OTP before setting a new password."
		f.mu.Unlock()
		return &ValidationError{Field: "reset_token", Msg: "missing reset token"}
	}
	if len(newPassword) < 6 {
		f.message = "Password must be at least 6 characters long."
		f.mu.Unlock()
		return &ValidationError{Field: "new_password", Msg: "password must be at least 6 characters"}
	}
	if newPassword != confirmPassword {
		f.message = "Passwords do not match."
		f.mu.Unlock()
		return &ValidationError{Field: "confirm_password", Msg: "passwords do not match"}
	}
	email := f.email
	token := f.resetToken
	f.message = ""
	gen := f.gen
	f.busy = true
	f.mu.Unlock()

	body := map[string]string{
		"email":            email,
		"token":            token,
		"new_password":     newPassword,
		"confirm_password": confirmPassword,
	}
	err := f.api.Post(ctx, "/auth/password-reset/confirm/", body, nil)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if f.gen != gen {
		return err
	}
	if err != nil {
		f.message = f.cfg.ExtractMessage(err)
		return err
	}

	f.info = ""
	f.transitionLocked(StepSuccess)
	f.scheduleRedirectLocked()
	return nil
}

// ChangeEmail is the single backward transition: back to REQUEST with the
// code, reset token, cooldown, and banners cleared. The email field value is
// kept for editing.
func (f *Flow) ChangeEmail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == StepSuccess || f.closed {
		return
	}
	f.gen++
	f.otp = ""
	f.resetToken = ""
	f.message = ""
	f.info = ""
	f.cooldownUntil = time.Time{}
	f.stopCooldownLocked()
	f.transitionLocked(StepRequest)
}

// Close tears the flow down, cancelling the cooldown ticker and any pending
// redirect. In-flight calls settle but their results are discarded.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.gen++
	f.stopCooldownLocked()
	if f.redirectTimer != nil {
		f.redirectTimer.Stop()
		f.redirectTimer = nil
	}
}

func (f *Flow) transitionLocked(to Step) {
	from := f.step
	f.step = to
	if f.cfg.OnTransition != nil && from != to {
		f.cfg.OnTransition(from, to)
	}
}

func (f *Flow) startCooldownLocked() {
	f.cooldownUntil = f.cfg.Now().Add(f.cfg.ResendCooldown)
	f.stopCooldownLocked()
	if f.cfg.OnCooldownTick == nil {
		return
	}

	stop := make(chan struct{})
	f.cooldownStop = stop
	go f.runCooldownTicker(stop)
}

func (f *Flow) stopCooldownLocked() {
	if f.cooldownStop != nil {
		close(f.cooldownStop)
		f.cooldownStop = nil
	}
}

func (f *Flow) runCooldownTicker(stop chan struct{}) {
	ticker := time.NewTicker(f.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f.mu.Lock()
			remaining := f.cooldownRemainingLocked()
			f.mu.Unlock()
			f.cfg.OnCooldownTick(remaining)
			if remaining == 0 {
				return
			}
		}
	}
}

func (f *Flow) scheduleRedirectLocked() {
	if f.cfg.OnRedirect == nil {
		return
	}
	f.redirectTimer = time.AfterFunc(f.cfg.RedirectDelay, f.cfg.OnRedirect)
}

func isDigits(v string) bool {
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

