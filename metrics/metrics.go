// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ComplaintsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complaints_submitted_total",
		Help: "Complaints successfully submitted by citizens.",
	})

	MediaUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Media uploads by kind and result.",
		},
		[]string{"kind", "result"},
	)

	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complaint_rate_limited_total",
		Help: "Complaint submissions rejected by the daily limit.",
	})
)

// Init registers the collectors with the default registry. Call once.
func Init() {
	prometheus.MustRegister(
		HTTPInFlight,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ComplaintsSubmitted,
		MediaUploads,
		RateLimited,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
