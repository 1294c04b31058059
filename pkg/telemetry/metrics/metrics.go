// Package metrics exposes Prometheus instrumentation for the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks request, stream, and connection instrumentation.
//
// Exposed series:
//   - monty_requests_total{event_type}: tasks by terminal event
//   - monty_request_duration_seconds: end-to-end task duration
//   - monty_stream_chunks_total: relayed content fragments
//   - monty_active_connections: currently open client connections
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal     *prometheus.CounterVec
	requestDuration   prometheus.Histogram
	streamChunksTotal prometheus.Counter
	activeConnections prometheus.Gauge
}

// New creates and registers the gateway metrics on a fresh registry.
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "monty"
	}

	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of tasks by terminal event type",
			},
			[]string{"event_type"},
		),
		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end duration of one task",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
			},
		),
		streamChunksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stream_chunks_total",
				Help:      "Total number of relayed content fragments",
			},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_connections",
				Help:      "Currently open client connections",
			},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.streamChunksTotal,
		m.activeConnections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordTask records one finished task with its terminal event type
// ("completed" or "error") and duration.
func (m *Metrics) RecordTask(eventType string, duration time.Duration) {
	m.requestsTotal.WithLabelValues(eventType).Inc()
	m.requestDuration.Observe(duration.Seconds())
}

// RecordChunk counts one relayed content fragment.
func (m *Metrics) RecordChunk() {
	m.streamChunksTotal.Inc()
}

// ConnOpened increments the active connection gauge.
func (m *Metrics) ConnOpened() {
	m.activeConnections.Inc()
}

// ConnClosed decrements the active connection gauge.
func (m *Metrics) ConnClosed() {
	m.activeConnections.Dec()
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
