package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	EntityMutations  *prometheus.CounterVec
	ResolveRequests  *prometheus.CounterVec
	ResolveCacheHits *prometheus.CounterVec
	ImportRows       *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntityMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeper_entity_mutations_total",
			Help: "Registry mutations by entity kind and action.",
		}, []string{"kind", "action"}),
		ResolveRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeper_resolve_requests_total",
			Help: "Name resolutions by entity kind and matching tier (tier \"none\" is a miss).",
		}, []string{"kind", "tier"}),
		ResolveCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeper_resolve_cache_hits_total",
			Help: "Name resolutions served from the Redis cache.",
		}, []string{"kind"}),
		ImportRows: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeper_import_rows_total",
			Help: "Statement rows processed by outcome (imported, unresolved, invalid).",
		}, []string{"outcome"}),
		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookkeeper_http_request_duration_seconds",
			Help:    "HTTP request latency by path and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "status"}),
	}
}

// RecordMutation counts one registry mutation.
func (m *Metrics) RecordMutation(kind, action string) {
	m.EntityMutations.WithLabelValues(kind, action).Inc()
}

// RecordResolve counts one name resolution with the tier that matched.
func (m *Metrics) RecordResolve(kind, tier string) {
	m.ResolveRequests.WithLabelValues(kind, tier).Inc()
}

// RecordCacheHit counts a resolution served from cache.
func (m *Metrics) RecordCacheHit(kind string) {
	m.ResolveCacheHits.WithLabelValues(kind).Inc()
}

// RecordImportRow counts one processed statement row.
func (m *Metrics) RecordImportRow(outcome string) {
	m.ImportRows.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one request's latency.
func (m *Metrics) ObserveHTTP(path, status string, d time.Duration) {
	m.HTTPLatency.WithLabelValues(path, status).Observe(d.Seconds())
}
