package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation", "table"},
	)

	// source: cache, api, error
	ExchangeRateLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exchange_rate_lookups_total",
			Help: "LKR to USD exchange rate lookups by source",
		},
		[]string{"source"},
	)

	// level: none, warning, danger
	ProjectStatsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_stats_computed_total",
			Help: "Project statistics computations by budget warning level",
		},
		[]string{"level"},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func IncrementExchangeRateLookup(source string) {
	ExchangeRateLookups.WithLabelValues(source).Inc()
}

func IncrementProjectStats(level string) {
	if level == "" {
		level = "none"
	}
	ProjectStatsComputed.WithLabelValues(level).Inc()
}
