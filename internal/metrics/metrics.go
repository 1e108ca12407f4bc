// Package metrics holds the prometheus collectors of the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_requests_total",
			Help: "Upstream API calls by method, route and outcome.",
		},
		[]string{"method", "route", "outcome"},
	)

	upstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_upstream_request_duration_seconds",
			Help:    "Upstream API call latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	feedSourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_feed_source_failures_total",
			Help: "Feed aggregation sources that failed and were skipped.",
		},
		[]string{"source"},
	)

	workspaces = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_workspaces",
			Help: "Browser session workspaces currently held in memory.",
		},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequests, upstreamLatency, feedSourceFailures, workspaces)
}

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeAPIError  = "api_error"
	OutcomeAuth      = "unauthorized"
	OutcomeTransport = "transport_error"
)

// ObserveUpstream records one finished upstream call. route is the path
// template, never the concrete path, to keep label cardinality bounded.
func ObserveUpstream(method, route, outcome string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(method, route, outcome).Inc()
	upstreamLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func FeedSourceFailed(source string) {
	feedSourceFailures.WithLabelValues(source).Inc()
}

func SetWorkspaces(n int) {
	workspaces.Set(float64(n))
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
