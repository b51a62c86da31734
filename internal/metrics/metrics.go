// Package metrics exposes repository and HTTP activity as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/budgetflow/budgetflow/internal/inmemory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOk       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics owns a private registry, so several instances can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetflow_repository_operations_total",
				Help: "Repository operations by entity, operation and outcome.",
			},
			[]string{"entity", "operation", "outcome"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgetflow_repository_operation_duration_seconds",
				Help:    "Duration of repository operations, simulated latency included.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 1},
			},
			[]string{"entity", "operation"},
		),
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budgetflow_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budgetflow_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveOperation implements inmemory.Observer.
func (m *Metrics) ObserveOperation(entity string, op inmemory.Operation, elapsed time.Duration, err error) {
	m.operations.WithLabelValues(entity, string(op), Outcome(err)).Inc()
	m.operationDuration.WithLabelValues(entity, string(op)).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOk
	case errors.Is(err, inmemory.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
