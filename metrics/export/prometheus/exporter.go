package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riceharvest/ironsession"
	"github.com/riceharvest/ironsession/metrics/export/internaldefs"
)

// Collector exposes ironsession operation counters (and, when a trail is
// attached, the audit drop counter) as Prometheus metrics.
type Collector struct {
	metrics *ironsession.Metrics
	audit   *ironsession.AuditTrail

	descs        map[ironsession.MetricID]*prometheus.Desc
	droppedDesc  *prometheus.Desc
	orderedDescs []*prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector builds a Collector over the given counter set. audit may be
// nil.
func NewCollector(metrics *ironsession.Metrics, audit *ironsession.AuditTrail) *Collector {
	c := &Collector{
		metrics: metrics,
		audit:   audit,
		descs:   make(map[ironsession.MetricID]*prometheus.Desc, len(internaldefs.CounterDefs)),
	}
	for _, def := range internaldefs.CounterDefs {
		desc := prometheus.NewDesc(def.Name, def.Help, nil, nil)
		c.descs[def.ID] = desc
		c.orderedDescs = append(c.orderedDescs, desc)
	}
	c.droppedDesc = prometheus.NewDesc(
		internaldefs.AuditDroppedDef.Name,
		internaldefs.AuditDroppedDef.Help,
		nil, nil,
	)
	c.orderedDescs = append(c.orderedDescs, c.droppedDesc)
	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, desc := range c.orderedDescs {
		ch <- desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snapshot := c.metrics.Snapshot()
	for _, def := range internaldefs.CounterDefs {
		ch <- prometheus.MustNewConstMetric(
			c.descs[def.ID],
			prometheus.CounterValue,
			float64(snapshot.Counters[def.ID]),
		)
	}
	ch <- prometheus.MustNewConstMetric(
		c.droppedDesc,
		prometheus.CounterValue,
		float64(c.audit.Dropped()),
	)
}

// Handler registers the collector on a fresh registry and returns a scrape
// handler for it.
func Handler(metrics *ironsession.Metrics, audit *ironsession.AuditTrail) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(NewCollector(metrics, audit))
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
