package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// query client and the watcher.
type Metrics struct {
	// Feed request metrics.
	RequestsTotal   *prometheus.CounterVec // labels: outcome={success,transport_error,timeout}
	RequestDuration prometheus.Histogram
	EventsFetched   prometheus.Counter
	CacheLookups    *prometheus.CounterVec // labels: result={hit,miss}

	// Country filter metrics.
	FilterEvents *prometheus.CounterVec // labels: result={kept,dropped}

	// Watcher metrics.
	WatcherRunning  prometheus.Gauge
	PollsTotal      *prometheus.CounterVec // labels: outcome={success,error}
	EventsPublished prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "requests_total",
			Help:      "Feed requests by outcome.",
		}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_feed",
			Name:      "request_duration_seconds",
			Help:      "Feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EventsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_fetched_total",
			Help:      "Total earthquake records decoded from feed responses.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		FilterEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "filter_events_total",
			Help:      "Country-filter decisions by result.",
		}, []string{"result"}),
		WatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_feed",
			Name:      "watcher_running",
			Help:      "1 when the watcher poll loop is active, 0 when shut down.",
		}),
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "polls_total",
			Help:      "Watcher poll cycles by outcome.",
		}, []string{"outcome"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_feed",
			Name:      "events_published_total",
			Help:      "New events handed to the sink by the watcher.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.EventsFetched,
		m.CacheLookups,
		m.FilterEvents,
		m.WatcherRunning,
		m.PollsTotal,
		m.EventsPublished,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "requests_total"}, []string{"outcome"}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "quake_feed", Name: "request_duration_seconds"}),
		EventsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_fetched_total"}),
		CacheLookups:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "cache_lookups_total"}, []string{"result"}),
		FilterEvents:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "filter_events_total"}, []string{"result"}),
		WatcherRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "quake_feed", Name: "watcher_running"}),
		PollsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "quake_feed", Name: "polls_total"}, []string{"outcome"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "quake_feed", Name: "events_published_total"}),
	}
}
