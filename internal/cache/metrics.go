package cache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricHits         = "presence_cache_hits_total"
	MetricMisses       = "presence_cache_misses_total"
	MetricLoads        = "presence_cache_loads_total"
	MetricLoadFailures = "presence_cache_load_failures_total"
	MetricStaleServes  = "presence_cache_stale_serves_total"
	MetricLoadDuration = "presence_cache_load_duration_seconds"
)

// Metrics contains Prometheus metrics for caches, labeled by cache name.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	hits         *prometheus.CounterVec
	misses       *prometheus.CounterVec
	loads        *prometheus.CounterVec
	loadFailures *prometheus.CounterVec
	staleServes  *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	labels := []string{"cache"}
	return &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHits,
			Help: "Total number of reads served from a fresh cache entry",
		}, labels),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricMisses,
			Help: "Total number of reads that found an empty or stale entry",
		}, labels),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricLoads,
			Help: "Total number of loader invocations",
		}, labels),
		loadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricLoadFailures,
			Help: "Total number of loader invocations that returned an error",
		}, labels),
		staleServes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricStaleServes,
			Help: "Total number of reads answered with a stale value after a failed refresh",
		}, labels),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricLoadDuration,
			Help:    "Histogram of loader duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.hits,
		m.misses,
		m.loads,
		m.loadFailures,
		m.staleServes,
		m.loadDuration,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) hit(name string) {
	if m != nil {
		m.hits.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) miss(name string) {
	if m != nil {
		m.misses.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) staleServe(name string) {
	if m != nil {
		m.staleServes.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) observeLoad(name string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(name).Inc()
	m.loadDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.loadFailures.WithLabelValues(name).Inc()
	}
}
