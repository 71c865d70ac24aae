package loomclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/loomlane/loomclient/recovery"
)

func TestRecoveryFlowWiredToGateway(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/auth/password-reset/request/":
			w.Write([]byte(`{"message":"sent"}`))
		case "/auth/password-reset/verify/":
			w.Write([]byte(`{"reset_token":"rt-9"}`))
		case "/auth/password-reset/confirm/":
			w.Write([]byte(`{"message":"done"}`))
		}
	}))

	flow := client.NewRecoveryFlow(RecoveryOptions{})
	defer flow.Close()
	ctx := context.Background()

	if err := flow.RequestOTP(ctx, "ada@example.com"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	flow.SetOTPInput("493021")
	if err := flow.VerifyOTP(ctx); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if flow.ResetToken() != "rt-9" {
		t.Fatalf("reset token = %q", flow.ResetToken())
	}
	if err := flow.ConfirmReset(ctx, "hunter22", "hunter22"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}
	if flow.Step() != recovery.StepSuccess {
		t.Fatalf("step = %s", flow.Step())
	}

	want := []string{
		"/auth/password-reset/request/",
		"/auth/password-reset/verify/",
		"/auth/password-reset/confirm/",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path %d = %q, want %q", i, paths[i], want[i])
		}
	}

	snap := client.MetricsSnapshot()
	if snap.Counters[MetricRecoveryRequest] != 1 {
		t.Fatalf("recovery request metric = %d", snap.Counters[MetricRecoveryRequest])
	}
	if snap.Counters[MetricRecoveryVerifySuccess] != 1 {
		t.Fatalf("verify success metric = %d", snap.Counters[MetricRecoveryVerifySuccess])
	}
	if snap.Counters[MetricRecoveryConfirmSuccess] != 1 {
		t.Fatalf("confirm success metric = %d", snap.Counters[MetricRecoveryConfirmSuccess])
	}
}

func TestRecoveryServerRejectionCounted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/password-reset/request/":
			w.Write([]byte(`{"message":"sent"}`))
		case "/auth/password-reset/verify/":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"Invalid or expired OTP."}`))
		}
	}))

	flow := client.NewRecoveryFlow(RecoveryOptions{})
	defer flow.Close()
	ctx := context.Background()

	if err := flow.RequestOTP(ctx, "ada@example.com"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	flow.SetOTPInput("000000")
	if err := flow.VerifyOTP(ctx); err == nil {
		t.Fatal("expected verify failure")
	}
	if flow.Message() != "Invalid or expired OTP." {
		t.Fatalf("message = %q", flow.Message())
	}
	if got := client.MetricsSnapshot().Counters[MetricRecoveryVerifyFailure]; got != 1 {
		t.Fatalf("verify failure metric = %d", got)
	}
}
