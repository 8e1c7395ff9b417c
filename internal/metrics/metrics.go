// Package metrics records Prometheus metrics for the gbms client: backend
// requests, commands and session events.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krcglobal/gbms/internal/errors"
)

// Metrics holds all Prometheus metrics for gbms
type Metrics struct {
	// Backend request metrics
	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	// Command execution metrics
	CommandExecutions *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec

	// Session metrics
	Logins             *prometheus.CounterVec
	SessionExpirations prometheus.Counter

	// Error metrics (by error code from structured errors)
	Errors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		APIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbms_api_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"method", "route", "status"},
		),
		APIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gbms_api_request_duration_seconds",
				Help:    "Backend API request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
			},
			[]string{"method", "route"},
		),

		CommandExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbms_command_executions_total",
				Help: "Total number of command executions",
			},
			[]string{"command", "success"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gbms_command_duration_seconds",
				Help:    "Command execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),

		Logins: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbms_logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"mode", "success"},
		),
		SessionExpirations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gbms_session_expirations_total",
				Help: "Total number of sessions ended by a 401 response",
			},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gbms_errors_total",
				Help: "Total number of command errors by error code",
			},
			[]string{"error_code"},
		),
	}
}

// ObserveRequest records one backend request. A zero status means no
// response arrived and is labelled "error".
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	route := Route(path)
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.APIRequests.WithLabelValues(method, route, code).Inc()
	m.APIDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveCommand records one command run and, on failure, its error code.
// Errors without a code are counted as "unknown".
func (m *Metrics) ObserveCommand(command string, d time.Duration, err error) {
	m.CommandExecutions.WithLabelValues(command, strconv.FormatBool(err == nil)).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
	if err == nil {
		return
	}
	code := string(errors.CodeOf(err))
	if code == "" {
		code = "unknown"
	}
	m.Errors.WithLabelValues(code).Inc()
}

// ObserveLogin records a login attempt.
func (m *Metrics) ObserveLogin(mode string, success bool) {
	m.Logins.WithLabelValues(mode, strconv.FormatBool(success)).Inc()
}

// Route turns a request path into a bounded label: numeric segments
// become ":id" and the query is dropped.
func Route(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if path == "" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
