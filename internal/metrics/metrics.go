// Package metrics exposes Prometheus instrumentation for counting and scanning.
package metrics

import (
	"strconv"
	"time"

	"github.com/hexcount-dev/hexcount/internal/hexcount"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hexcount_requests_total",
			Help: "Total number of HTTP requests by endpoint and status code",
		},
		[]string{"endpoint", "status"},
	)

	// Counting is fast; most requests should land in the sub-millisecond buckets.
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hexcount_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"endpoint"},
	)

	countedBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hexcount_counted_bytes",
			Help:    "Hex byte count per counted selection",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	countPathTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hexcount_count_path_total",
			Help: "Counts by the pipeline path that produced them",
		},
		[]string{"path"},
	)

	literalsFoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hexcount_literals_found_total",
			Help: "Total number of byte-array literals found by scans",
		},
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(endpoint string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCount records the outcome of one count.
func RecordCount(a hexcount.Analysis) {
	countPathTotal.WithLabelValues(string(a.Path)).Inc()
	if a.Path != hexcount.PathEmpty {
		countedBytes.Observe(float64(a.Count))
	}
}

// RecordLiterals adds n to the literals found counter.
func RecordLiterals(n int) {
	if n > 0 {
		literalsFoundTotal.Add(float64(n))
	}
}
