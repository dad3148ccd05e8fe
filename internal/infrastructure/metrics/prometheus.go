package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports repository operation metrics to Prometheus.
type PrometheusExporter struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	errors     *prometheus.CounterVec
}

// NewPrometheusExporter registers the relationship metrics on reg under namespace.
func NewPrometheusExporter(reg prometheus.Registerer, namespace string) *PrometheusExporter {
	factory := promauto.With(reg)
	labels := []string{"operation", "kind"}

	return &PrometheusExporter{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relationship_operations_total",
				Help:      "Total number of relationship repository operations",
			},
			labels,
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "relationship_operation_duration_seconds",
				Help:      "Duration of relationship repository operations in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			labels,
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relationship_operation_errors_total",
				Help:      "Total number of failed relationship repository operations",
			},
			labels,
		),
	}
}

// RecordOperation increments the operation counter
func (e *PrometheusExporter) RecordOperation(operation, kind string) {
	e.operations.WithLabelValues(operation, kind).Inc()
}

// RecordDuration observes the duration of an operation
func (e *PrometheusExporter) RecordDuration(operation, kind string, durationSeconds float64) {
	e.duration.WithLabelValues(operation, kind).Observe(durationSeconds)
}

// RecordError increments the error counter
func (e *PrometheusExporter) RecordError(operation, kind string) {
	e.errors.WithLabelValues(operation, kind).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
