package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metric collectors for the site.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Login metrics.
	LoginsTotal *prometheus.CounterVec

	// Background task metrics.
	TasksTotal    *prometheus.CounterVec
	TaskDuration  *prometheus.HistogramVec
	TasksInFlight prometheus.Gauge

	// Server lifecycle.
	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diplomats_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diplomats_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		LoginsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diplomats_logins_total",
			Help: "Total number of completed OAuth callbacks by outcome.",
		}, []string{"outcome"}),

		TasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diplomats_background_tasks_total",
			Help: "Total number of finished background tasks.",
		}, []string{"task", "status"}),

		TaskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "diplomats_background_task_duration_seconds",
			Help:    "Background task duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"task"}),

		TasksInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "diplomats_background_tasks_in_flight",
			Help: "Number of background tasks currently running.",
		}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "diplomats_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginsTotal,
		m.TasksTotal,
		m.TaskDuration,
		m.TasksInFlight,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records a finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, statusCode int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncLogin increments the login counter for the given outcome.
func (m *Metrics) IncLogin(outcome string) {
	m.LoginsTotal.WithLabelValues(outcome).Inc()
}

// TaskStarted marks a background task as running.
func (m *Metrics) TaskStarted(string) {
	m.TasksInFlight.Inc()
}

// TaskFinished records the outcome of a background task.
func (m *Metrics) TaskFinished(name string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.TasksInFlight.Dec()
	m.TasksTotal.WithLabelValues(name, status).Inc()
	m.TaskDuration.WithLabelValues(name).Observe(d.Seconds())
}
