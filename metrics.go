package ironsession

import "sync/atomic"

// MetricID identifies one operation counter.
type MetricID uint16

const (
	// MetricDecodeOK counts inbound cookies that verified within TTL.
	MetricDecodeOK MetricID = iota
	// MetricDecodeAbsent counts requests with no session cookie.
	MetricDecodeAbsent
	// MetricDecodeInvalid counts cookies rejected by every candidate secret.
	MetricDecodeInvalid
	// MetricDecodeExpired counts cookies whose envelope outlived the TTL.
	MetricDecodeExpired
	// MetricDecodeLegacy counts cookies accepted through legacy tolerance.
	MetricDecodeLegacy
	// MetricSave counts successful Save operations.
	MetricSave
	// MetricSaveRejectedSent counts saves refused after response flush.
	MetricSaveRejectedSent
	// MetricSaveRejectedSize counts saves refused by the cookie size bound.
	MetricSaveRejectedSize
	// MetricDestroy counts Destroy operations.
	MetricDestroy
	// MetricSealFailure counts failures of the sealing primitive.
	MetricSealFailure
	metricIDCount
)

const cacheLineSize = 64

// Counters sit on their own cache lines so concurrent requests bumping
// different metrics never share one.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of atomic operation counters shared across request
// handles. All methods are safe on a nil receiver, which behaves as metrics
// disabled.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsConfig controls counter collection.
type MetricsConfig struct {
	Enabled bool
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns a counter set honoring cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being collected.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc bumps one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies all counters at once.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricIDCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snapshot.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snapshot
}

func decodeMetric(status DecodeStatus) MetricID {
	switch status {
	case StatusAbsent:
		return MetricDecodeAbsent
	case StatusInvalid:
		return MetricDecodeInvalid
	case StatusExpired:
		return MetricDecodeExpired
	case StatusLegacy:
		return MetricDecodeLegacy
	default:
		return MetricDecodeOK
	}
}
