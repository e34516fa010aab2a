// Package metrics exposes Prometheus collectors for the FAQ engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "faqbot"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Query metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "faq",
			Name:      "queries_total",
			Help:      "Total number of answered queries by backend and outcome",
		},
		[]string{"backend", "kind"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "faq",
			Name:      "query_duration_seconds",
			Help:      "Query latency in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"backend"},
	)

	MatchScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "faq",
			Name:      "match_score",
			Help:      "Best normalized score per retrieval query",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
		[]string{"backend"},
	)

	// Index metrics
	IndexBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "builds_total",
			Help:      "Total number of index builds by backend and status",
		},
		[]string{"backend", "status"},
	)

	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "build_duration_seconds",
			Help:      "Index build duration in seconds",
			Buckets:   []float64{.001, .01, .1, .5, 1, 5, 30, 120},
		},
	)

	IndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "entries",
			Help:      "Number of entries in the active index",
		},
	)

	// Sentiment action metrics
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "policy",
			Name:      "actions_total",
			Help:      "Total number of decided feedback actions",
		},
		[]string{"action"},
	)
)

// RecordQuery records one answered query
func RecordQuery(backend, kind string, seconds float64) {
	QueriesTotal.WithLabelValues(backend, kind).Inc()
	QueryDuration.WithLabelValues(backend).Observe(seconds)
}

// RecordBuild records one index build attempt
func RecordBuild(backend, status string, seconds float64, entries int) {
	IndexBuildsTotal.WithLabelValues(backend, status).Inc()
	if status == "success" {
		IndexBuildDuration.Observe(seconds)
		IndexEntries.Set(float64(entries))
	}
}
