package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"stampcard/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncStampsFilled()
	IncStampsUndone()
	IncCompletions()
	SetCardState(count, historyEntries int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	stampsFilled        prometheus.Counter
	stampsUndone        prometheus.Counter
	completions         prometheus.Counter
	currentCount        prometheus.Gauge
	historyEntries      prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStampsFilled() {
	m.stampsFilled.Inc()
}

func (m *MetricsProvider) IncStampsUndone() {
	m.stampsUndone.Inc()
}

func (m *MetricsProvider) IncCompletions() {
	m.completions.Inc()
}

func (m *MetricsProvider) SetCardState(count, historyEntries int) {
	m.currentCount.Set(float64(count))
	m.historyEntries.Set(float64(historyEntries))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stampcard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stampcard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stampcard_cache_hits_total",
			Help: "Total number of page cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stampcard_cache_misses_total",
			Help: "Total number of page cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stampcard_persistence_duration_seconds",
			Help:    "Duration of store writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		stampsFilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stampcard_stamps_filled_total",
			Help: "Total number of stamps earned",
		}),

		stampsUndone: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stampcard_stamps_undone_total",
			Help: "Total number of history entries undone",
		}),

		completions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stampcard_completions_total",
			Help: "Total number of completion celebrations shown",
		}),

		currentCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stampcard_current_count",
			Help: "Number of filled slots",
		}),

		historyEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "stampcard_history_entries",
			Help: "Number of entries in the history log",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncStampsFilled()                                 {}
func (n *noopMetrics) IncStampsUndone()                                 {}
func (n *noopMetrics) IncCompletions()                                  {}
func (n *noopMetrics) SetCardState(_, _ int)                            {}
