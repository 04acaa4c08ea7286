// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pass generation outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeFailed         = "failed"
	OutcomeTimeout        = "timeout"
)

// SigningBuckets covers PKCS#12 decoding plus an RSA signature, which is usually well under a second
var SigningBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Metrics holds the service collectors and the gatherer that serves them
type Metrics struct {
	gatherer prometheus.Gatherer

	// PassesTotal counts pass generation attempts by outcome
	PassesTotal *prometheus.CounterVec

	// SigningDuration observes the time spent creating the signed archive
	SigningDuration prometheus.Histogram

	// ArchiveBytes observes the size of generated archives
	ArchiveBytes prometheus.Histogram

	// RequestsTotal counts HTTP requests by route pattern, method and status code
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes HTTP latency by route pattern
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors on a new registry that also carries the Go runtime and process collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegisterer(namespace, reg)
}

// NewWithRegisterer creates the collectors and registers them with registerer.
// Handler serves registerer when it is also a Gatherer (e.g. a *prometheus.Registry) and the default gatherer otherwise.
func NewWithRegisterer(namespace string, registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	m := &Metrics{
		PassesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_generated_total",
				Help:      "Total number of pass generation attempts by outcome",
			},
			[]string{"outcome"},
		),

		SigningDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pass_signing_duration_seconds",
				Help:      "Time spent signing and packaging pass archives",
				Buckets:   SigningBuckets,
			},
		),

		ArchiveBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pass_archive_bytes",
				Help:      "Size of generated pass archives",
				Buckets:   prometheus.ExponentialBuckets(1024, 2, 10),
			},
		),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route, method, and status code",
			},
			[]string{"route", "method", "status_code"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	if gatherer, ok := registerer.(prometheus.Gatherer); ok {
		m.gatherer = gatherer
	}
	return m
}

// RecordPass records the outcome of a pass generation attempt
func (m *Metrics) RecordPass(outcome string) {
	m.PassesTotal.WithLabelValues(outcome).Inc()
}

// RecordSigning records a completed signing operation
func (m *Metrics) RecordSigning(duration time.Duration, archiveSize int) {
	m.SigningDuration.Observe(duration.Seconds())
	m.ArchiveBytes.Observe(float64(archiveSize))
}

// Handler returns the /metrics handler
func (m *Metrics) Handler() http.Handler {
	if m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency.
// The route label is the chi route pattern, so path parameters do not create new series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
