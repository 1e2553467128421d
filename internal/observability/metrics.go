// Package observability provides Prometheus metrics shared across the
// application layers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photostream_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// StorageErrors counts object-storage errors by operation type.
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photostream_storage_errors_total",
		Help: "Total number of object storage errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "photostream_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheHits counts cache lookups by key class and outcome.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photostream_cache_lookups_total",
		Help: "Total cache lookups by key class and outcome (hit or miss)",
	}, []string{"class", "outcome"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}
