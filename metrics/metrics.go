package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Upstream adapter metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream API requests by the adapters",
		},
		[]string{"source", "strategy", "status"},
	)

	ActivityItemsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_items_served_total",
			Help: "Total number of normalized activity items served to clients",
		},
		[]string{"source", "strategy"},
	)

	StrategyFallthroughs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strategy_fallthroughs_total",
			Help: "Times a submission-fetch strategy failed and the chain moved on",
		},
		[]string{"strategy"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
