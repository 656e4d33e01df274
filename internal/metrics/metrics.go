// Package metrics exposes Prometheus collectors for the HTTP server and the
// theme library.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	validations     *prometheus.CounterVec
	validationScore prometheus.Histogram
	storedThemes    prometheus.Gauge
	backups         *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themesmith",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "themesmith",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themesmith",
			Name:      "theme_validations_total",
			Help:      "Theme validations by outcome.",
		}, []string{"valid"}),
		validationScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "themesmith",
			Name:      "theme_validation_score",
			Help:      "Distribution of validation scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		storedThemes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "themesmith",
			Name:      "stored_themes",
			Help:      "Themes currently in the library.",
		}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "themesmith",
			Name:      "backups_total",
			Help:      "Library backups by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.validations,
		m.validationScore,
		m.storedThemes,
		m.backups,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveValidation(valid bool, score int) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.validationScore.Observe(float64(score))
}

func (m *Metrics) SetStoredThemes(count int) {
	if m == nil {
		return
	}
	m.storedThemes.Set(float64(count))
}

func (m *Metrics) ObserveBackup(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.backups.WithLabelValues(result).Inc()
}
