package loomclient

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(8)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 8}, sink)
	defer d.Close()

	d.Emit(AuditEvent{EventType: auditEventLogin, Email: "ada@example.com", Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != auditEventLogin || event.Email != "ada@example.com" {
			t.Fatalf("event = %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event never reached the sink")
	}
}

func TestDispatcherDisabledIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, nil)
	if d != nil {
		t.Fatal("disabled audit must not start a dispatcher")
	}
	// nil dispatcher methods are no-ops.
	d.Emit(AuditEvent{EventType: auditEventLogin})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := blockingSink{block: block}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1}, sink)
	defer d.Close()
	defer close(block)

	// One event occupies the worker, one fills the buffer; everything after
	// that must drop rather than stall a user-facing operation.
	for i := 0; i < 10; i++ {
		d.Emit(AuditEvent{EventType: auditEventLogout})
	}

	deadline := time.After(2 * time.Second)
	for d.Dropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("full buffer never dropped")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

type blockingSink struct {
	block chan struct{}
}

func (s blockingSink) Emit(context.Context, AuditEvent) { <-s.block }

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(AuditEvent{EventType: auditEventRegister})
	}
	d.Close()

	received := 0
	for {
		select {
		case <-sink.Events():
			received++
			if received == 5 {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("drained %d of 5 events", received)
		}
	}
}

func TestJSONWriterSinkEmitsNDJSON(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventType: auditEventPasswordChange,
		UserID:    "7",
		Success:   true,
	})

	var decoded AuditEvent
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded); err != nil {
		t.Fatalf("decode emitted line: %v", err)
	}
	if decoded.EventType != auditEventPasswordChange || decoded.UserID != "7" || !decoded.Success {
		t.Fatalf("decoded = %+v", decoded)
	}
	if buf.Bytes()[buf.Len()-1] != '\n' {
		t.Fatal("each event must end with a newline")
	}
}
