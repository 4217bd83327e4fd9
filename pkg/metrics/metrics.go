// Package metrics provides Prometheus metrics for HTTP traffic and reply generation.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/lewisedginton/email_responder/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystem = "email_responder"
)

// OutcomeSuccess is the outcome label recorded for generated replies. Failed
// generations are labelled with their failure kind.
const OutcomeSuccess = "success"

// Metrics owns a private registry and the collectors registered on it. All
// recording methods are safe on a nil *Metrics, which records nothing.
type Metrics struct {
	reg *prometheus.Registry

	TotalHTTPRequestsCounter prometheus.Counter
	HTTPDurationHistogram    prometheus.Histogram

	mu                   sync.Mutex
	HTTPResponseCounters map[int]prometheus.Counter

	GenerationCounter   *prometheus.CounterVec
	GenerationHistogram *prometheus.HistogramVec

	log logger.Logger
}

// NewMetrics creates a Metrics instance with the requested collector groups registered.
func NewMetrics(httpCounters, generationMetrics bool, l logger.Logger) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		log: l,
	}
	if httpCounters {
		m.TotalHTTPRequestsCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "total_http_requests",
			Help:      "Total HTTP requests",
		})
		m.HTTPDurationHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 3, 5, 10, 30},
		})
		m.HTTPResponseCounters = make(map[int]prometheus.Counter)
		m.reg.MustRegister(m.TotalHTTPRequestsCounter, m.HTTPDurationHistogram)
	}
	if generationMetrics {
		m.GenerationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "generations_total",
			Help:      "Reply generations by outcome and tone",
		}, []string{"outcome", "tone"})
		m.GenerationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: subsystem,
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on the language model per generation",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}, []string{"outcome"})
		m.reg.MustRegister(m.GenerationCounter, m.GenerationHistogram)
	}
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Listen serves /metrics on port in the background. The returned channel
// receives the server's terminal error; the closer shuts it down.
func (m *Metrics) Listen(port int) (<-chan error, func(context.Context) error) {
	m.log.Info("Starting metrics listener", logger.IntField("port", port))

	mux := http.NewServeMux()
	mux.Handle("/", http.NotFoundHandler())
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	return errChan, func(ctx context.Context) error {
		m.log.Info("Stopping metrics listener")
		return server.Shutdown(ctx)
	}
}

// AddCustomMetric registers an additional collector.
func (m *Metrics) AddCustomMetric(c prometheus.Collector) {
	m.reg.MustRegister(c)
}

// IncrementHTTPResponseCounter increments the counter for the given HTTP status code,
// registering it on first use.
func (m *Metrics) IncrementHTTPResponseCounter(code int) {
	if m == nil || m.HTTPResponseCounters == nil {
		return
	}
	m.mu.Lock()
	c, ok := m.HTTPResponseCounters[code]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      fmt.Sprintf("total_%d_http_responses", code),
			Help:      fmt.Sprintf("Total %s HTTP responses returned", http.StatusText(code)),
		})
		m.reg.MustRegister(c)
		m.HTTPResponseCounters[code] = c
	}
	m.mu.Unlock()
	c.Inc()
}

// ObserveGeneration records one generation with its outcome label, tone and
// time spent in the language model call.
func (m *Metrics) ObserveGeneration(outcome, tone string, d time.Duration) {
	if m == nil || m.GenerationCounter == nil {
		return
	}
	m.GenerationCounter.WithLabelValues(outcome, tone).Inc()
	m.GenerationHistogram.WithLabelValues(outcome).Observe(d.Seconds())
}

// HTTPMiddleware returns a Chi-compatible middleware that tracks HTTP metrics
func (m *Metrics) HTTPMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil || m.TotalHTTPRequestsCounter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.TotalHTTPRequestsCounter.Inc()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.HTTPDurationHistogram.Observe(time.Since(start).Seconds())
			m.IncrementHTTPResponseCounter(status)
		})
	}
}
