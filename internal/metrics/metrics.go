// Package metrics collects and exposes Prometheus metrics for the
// aggregation pipeline and the brief generator.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the fetcher, engine and brief service use
// to report events. It exists so those packages stay testable without
// a live registry.
type Recorder interface {
	RecordFetchSuccess()
	RecordFetchFailure()
	RecordParseFailure()
	RecordFetchLatency(d time.Duration)
	RecordAggregate(items int)
	RecordBriefGenerated(ok bool)
}

// Noop discards all recordings.
type Noop struct{}

func (Noop) RecordFetchSuccess()              {}
func (Noop) RecordFetchFailure()              {}
func (Noop) RecordParseFailure()              {}
func (Noop) RecordFetchLatency(time.Duration) {}
func (Noop) RecordAggregate(int)              {}
func (Noop) RecordBriefGenerated(bool)        {}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	fetchSuccess    prometheus.Counter
	fetchFail       prometheus.Counter
	parseFail       prometheus.Counter
	fetchLatency    prometheus.Histogram
	aggregateRuns   prometheus.Counter
	aggregateItems  prometheus.Counter
	briefsGenerated *prometheus.CounterVec
}

// NewCollector registers all pipeline metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetchSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xraynews_fetch_success_total",
			Help: "Feed fetches that returned a parseable document.",
		}),
		fetchFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xraynews_fetch_fail_total",
			Help: "Feed fetches that failed at the network or HTTP layer.",
		}),
		parseFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xraynews_parse_fail_total",
			Help: "Feed responses that could not be parsed as RSS or Atom.",
		}),
		fetchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "xraynews_fetch_latency_seconds",
			Help:    "Latency of individual feed fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		aggregateRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xraynews_aggregate_runs_total",
			Help: "Aggregation runs served.",
		}),
		aggregateItems: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xraynews_aggregate_items_total",
			Help: "De-duplicated items returned across all aggregation runs.",
		}),
		briefsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xraynews_briefs_generated_total",
			Help: "Brief generation attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.fetchSuccess,
		c.fetchFail,
		c.parseFail,
		c.fetchLatency,
		c.aggregateRuns,
		c.aggregateItems,
		c.briefsGenerated,
	)

	return c
}

func (c *Collector) RecordFetchSuccess() { c.fetchSuccess.Inc() }
func (c *Collector) RecordFetchFailure() { c.fetchFail.Inc() }
func (c *Collector) RecordParseFailure() { c.parseFail.Inc() }

func (c *Collector) RecordFetchLatency(d time.Duration) {
	c.fetchLatency.Observe(d.Seconds())
}

func (c *Collector) RecordAggregate(items int) {
	c.aggregateRuns.Inc()
	c.aggregateItems.Add(float64(items))
}

func (c *Collector) RecordBriefGenerated(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	c.briefsGenerated.WithLabelValues(result).Inc()
}

// Handler returns the scrape endpoint handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
