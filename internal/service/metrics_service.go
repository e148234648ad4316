package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adewale-oss/timetable-api/internal/scheduler"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the schedule generator.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationRuns     *prometheus.CounterVec
	generationSteps    prometheus.Histogram
	generationBacktrks prometheus.Histogram
	generationDuration prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	generationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generation_runs_total",
		Help: "Total schedule generation runs by outcome",
	}, []string{"outcome"})

	generationSteps := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_steps",
		Help:    "Search steps consumed per generation run",
		Buckets: prometheus.ExponentialBuckets(100, 10, 6),
	})

	generationBacktracks := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_backtracks",
		Help:    "Backtracks performed per generation run",
		Buckets: prometheus.ExponentialBuckets(10, 10, 6),
	})

	generationDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Wall-clock duration of generation runs",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationRuns, generationSteps, generationBacktracks, generationDuration, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationRuns:     generationRuns,
		generationSteps:    generationSteps,
		generationBacktrks: generationBacktracks,
		generationDuration: generationDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveGeneration records one solver run and its search statistics.
func (m *MetricsService) ObserveGeneration(outcome string, stats scheduler.Stats) {
	if m == nil {
		return
	}
	m.generationRuns.WithLabelValues(outcome).Inc()
	m.generationSteps.Observe(float64(stats.Steps))
	m.generationBacktrks.Observe(float64(stats.Backtracks))
	m.generationDuration.Observe(stats.Elapsed.Seconds())
}
