// Package metrics exposes Prometheus collectors for the readings client.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// fetchesTotal tracks upstream fetch attempts by strategy and outcome.
	fetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectio_fetches_total",
			Help: "Total upstream fetch attempts, labeled by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	// raceRoutesTotal tracks individual racing route results.
	raceRoutesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectio_race_routes_total",
			Help: "Total racing route attempts, labeled by route and outcome.",
		},
		[]string{"route", "outcome"},
	)

	// cacheLookupsTotal tracks cache hits and misses by tier.
	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectio_cache_lookups_total",
			Help: "Total cache lookups, labeled by tier and result.",
		},
		[]string{"tier", "result"},
	)

	// parseDurationSeconds observes how long page extraction takes.
	parseDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lectio_parse_duration_seconds",
			Help:    "Histogram of page parse latencies.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// httpRequestsTotal tracks API requests by method and code.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lectio_http_requests_total",
			Help: "Total HTTP requests served, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	// httpRequestDurationSeconds observes API request latencies by route.
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lectio_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)
)

// Fetch outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
	OutcomeWin     = "win"
	OutcomeLose    = "lose"
)

// ObserveFetch records one fetch attempt.
func ObserveFetch(strategy, outcome string) {
	fetchesTotal.WithLabelValues(strategy, outcome).Inc()
}

// ObserveRaceRoute records one racing route result.
func ObserveRaceRoute(route, outcome string) {
	raceRoutesTotal.WithLabelValues(route, outcome).Inc()
}

// ObserveCacheLookup records a cache hit or miss for a tier.
func ObserveCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(tier, result).Inc()
}

// ObserveParse records the duration of one parse.
func ObserveParse(d time.Duration) {
	parseDurationSeconds.Observe(d.Seconds())
}

// ObserveHTTPRequest records one served API request.
func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
