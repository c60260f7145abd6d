package ironsession

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricSave)

	if got := m.Value(MetricSave); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricSave)
	m.Inc(MetricSave)
	m.Inc(MetricSave)

	if got := m.Value(MetricSave); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricSave)
	if m.Value(MetricSave) != 0 {
		t.Fatal("nil metrics returned a count")
	}
	if m.Enabled() {
		t.Fatal("nil metrics reported enabled")
	}
	if snapshot := m.Snapshot(); snapshot.Counters == nil {
		t.Fatal("nil metrics snapshot has nil counters")
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricDecodeOK)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricDecodeOK); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsSnapshotCopies(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricDestroy)

	snapshot := m.Snapshot()
	if snapshot.Counters[MetricDestroy] != 1 {
		t.Fatalf("snapshot = %v", snapshot.Counters)
	}

	m.Inc(MetricDestroy)
	if snapshot.Counters[MetricDestroy] != 1 {
		t.Fatal("snapshot tracked later increments")
	}
	if len(snapshot.Counters) != int(metricIDCount) {
		t.Fatalf("snapshot size = %d, want %d", len(snapshot.Counters), metricIDCount)
	}
}

func TestSessionOperationsCounted(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	opts := testOptions()
	opts.Metrics = m

	// Absent decode.
	sess, w := newHTTPSession(t, "", opts)
	if got := m.Value(MetricDecodeAbsent); got != 1 {
		t.Fatalf("MetricDecodeAbsent = %d, want 1", got)
	}

	// Successful save.
	_ = sess.Set("user", "alice")
	if err := sess.Save(context.Background()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if got := m.Value(MetricSave); got != 1 {
		t.Fatalf("MetricSave = %d, want 1", got)
	}

	// Valid decode of the issued cookie.
	token := firstCookieToken(t, w.Header().Values("Set-Cookie")[0])
	if _, _ = newHTTPSession(t, "session="+token, opts); m.Value(MetricDecodeOK) != 1 {
		t.Fatalf("MetricDecodeOK = %d, want 1", m.Value(MetricDecodeOK))
	}

	// Rejections.
	w.written = true
	if err := sess.Save(context.Background()); err == nil {
		t.Fatal("Save after send succeeded")
	}
	if got := m.Value(MetricSaveRejectedSent); got != 1 {
		t.Fatalf("MetricSaveRejectedSent = %d, want 1", got)
	}
	w.written = false

	_ = sess.Set("blob", strings.Repeat("x", maxCookieSize))
	if err := sess.Save(context.Background()); err == nil {
		t.Fatal("oversized Save succeeded")
	}
	if got := m.Value(MetricSaveRejectedSize); got != 1 {
		t.Fatalf("MetricSaveRejectedSize = %d, want 1", got)
	}
	sess.Delete("blob")

	// Destroy.
	if err := sess.Destroy(context.Background()); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	if got := m.Value(MetricDestroy); got != 1 {
		t.Fatalf("MetricDestroy = %d, want 1", got)
	}
}

func TestDecodeMetricMapping(t *testing.T) {
	tests := []struct {
		status DecodeStatus
		want   MetricID
	}{
		{StatusOK, MetricDecodeOK},
		{StatusAbsent, MetricDecodeAbsent},
		{StatusInvalid, MetricDecodeInvalid},
		{StatusExpired, MetricDecodeExpired},
		{StatusLegacy, MetricDecodeLegacy},
	}

	for _, tt := range tests {
		if got := decodeMetric(tt.status); got != tt.want {
			t.Fatalf("decodeMetric(%v) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
