// Package metrics exposes Prometheus instruments for directory
// operations.  Instruments are registered once on the default registry.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/booking-directory/internal/repository"
)

var (
	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Name:      "operations_total",
		Help:      "Directory operations by name and outcome.",
	}, []string{"operation", "outcome"})

	duration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "directory",
		Name:      "operation_duration_seconds",
		Help:      "Latency of directory operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	anomalies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Name:      "integrity_anomalies_total",
		Help:      "Shows skipped because a venue or artist reference did not resolve.",
	}, []string{"operation"})
)

// Outcome maps an operation error to its metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrValidation):
		return "validation"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrIntegrity):
		return "integrity"
	case errors.Is(err, repository.ErrStorage):
		return "storage"
	default:
		return "error"
	}
}

// Observe records one finished operation.
func Observe(op string, start time.Time, err error) {
	operations.WithLabelValues(op, Outcome(err)).Inc()
	duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Anomalies records shows skipped under the lenient integrity policy.
func Anomalies(op string, n int) {
	if n > 0 {
		anomalies.WithLabelValues(op).Add(float64(n))
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
