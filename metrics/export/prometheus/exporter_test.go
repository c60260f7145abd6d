package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riceharvest/ironsession"
)

func scrape(t *testing.T, h http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := ironsession.NewMetrics(ironsession.MetricsConfig{Enabled: true})
	m.Inc(ironsession.MetricSave)
	m.Inc(ironsession.MetricSave)
	m.Inc(ironsession.MetricDecodeOK)

	out := scrape(t, Handler(m, nil))
	if !strings.Contains(out, "ironsession_save_total 2") {
		t.Fatalf("expected save counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "ironsession_decode_ok_total 1") {
		t.Fatalf("expected decode counter in output, got:\n%s", out)
	}
	// Untouched counters scrape as zero, not as absent series.
	if !strings.Contains(out, "ironsession_destroy_total 0") {
		t.Fatalf("expected zero destroy counter in output, got:\n%s", out)
	}
}

func TestHandlerExposesAuditDropCounter(t *testing.T) {
	m := ironsession.NewMetrics(ironsession.MetricsConfig{Enabled: true})

	out := scrape(t, Handler(m, nil))
	if !strings.Contains(out, "ironsession_audit_dropped_total 0") {
		t.Fatalf("expected audit drop counter in output, got:\n%s", out)
	}
}

func TestHandlerToleratesNilSources(t *testing.T) {
	out := scrape(t, Handler(nil, nil))
	if !strings.Contains(out, "ironsession_save_total 0") {
		t.Fatalf("expected zeroed output for nil sources, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	m := ironsession.NewMetrics(ironsession.MetricsConfig{Enabled: true})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(m, nil).ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
}

func TestCollectorDescribeMatchesCollect(t *testing.T) {
	c := NewCollector(ironsession.NewMetrics(ironsession.MetricsConfig{Enabled: true}), nil)

	descs := make(chan *prometheus.Desc, 32)
	c.Describe(descs)
	close(descs)

	var described int
	for range descs {
		described++
	}

	metrics := make(chan prometheus.Metric, 32)
	c.Collect(metrics)
	close(metrics)

	var collected int
	for range metrics {
		collected++
	}

	if described != collected {
		t.Fatalf("described %d descs but collected %d metrics", described, collected)
	}
}
