package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	loomclient "github.com/loomlane/loomclient"
)

type fakeSource struct {
	snapshot loomclient.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() loomclient.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                        { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: loomclient.MetricsSnapshot{Counters: map[loomclient.MetricID]uint64{}},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCountersAndDropped(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: loomclient.MetricsSnapshot{
			Counters: map[loomclient.MetricID]uint64{
				loomclient.MetricLoginSuccess:    7,
				loomclient.MetricDedupeCoalesced: 3,
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "loomclient_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "loomclient_dedupe_coalesced_total 3") {
		t.Fatalf("expected dedupe counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "loomclient_audit_dropped_total 2") {
		t.Fatalf("expected audit dropped counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE loomclient_login_success_total counter") {
		t.Fatalf("expected TYPE line in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: loomclient.MetricsSnapshot{
			Counters: map[loomclient.MetricID]uint64{loomclient.MetricLoginSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain; version=0.0.4") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "loomclient_login_success_total 1") {
		t.Fatalf("body:\n%s", rec.Body.String())
	}
}

func TestRenderNilExporter(t *testing.T) {
	var exp *PrometheusExporter
	if got := exp.Render(); got != "" {
		t.Fatalf("nil exporter rendered %q", got)
	}
}
