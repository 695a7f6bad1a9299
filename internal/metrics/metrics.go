// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts handled requests by route, method and status
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "tradelens",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests handled",
	},
	[]string{"method", "route", "status"},
)

// HTTPDuration observes request latency per route
var HTTPDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradelens",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	},
	[]string{"method", "route"},
)

// RowsIngested counts CSV rows that survived normalization
var RowsIngested = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "tradelens",
		Subsystem: "ingest",
		Name:      "rows_total",
		Help:      "CSV rows accepted as trade records",
	},
)

// RowsRejected counts CSV rows skipped during normalization
var RowsRejected = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "tradelens",
		Subsystem: "ingest",
		Name:      "rows_rejected_total",
		Help:      "CSV rows rejected during normalization",
	},
)

// AnalyticsDuration observes how long one derived view takes to compute
var AnalyticsDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tradelens",
		Subsystem: "analytics",
		Name:      "compute_duration_seconds",
		Help:      "Time to derive one analytics view",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	},
	[]string{"view"},
)
