// Package metrics exposes Prometheus collectors for the HTTP layer and the
// rating workflow.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Rating workflow
	RatingTransitionsTotal *prometheus.CounterVec
	TransitionConflicts    prometheus.Counter
	NotificationsRequested *prometheus.CounterVec

	// Progress cache
	ProgressCacheTotal *prometheus.CounterVec
	ProgressComputed   prometheus.Counter
}

// New registers the collectors with the default registry once and returns them.
//
// Metrics:
//   - skilltrack_http_requests_total{method,route,status}
//   - skilltrack_http_request_duration_seconds{method,route}
//   - skilltrack_rating_transitions_total{transition}
//   - skilltrack_rating_transition_conflicts_total
//   - skilltrack_notifications_requested_total{kind}
//   - skilltrack_progress_cache_total{result}
//   - skilltrack_progress_computed_total
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skilltrack_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "skilltrack_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),
			RatingTransitionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skilltrack_rating_transitions_total",
					Help: "Total number of rating status transitions",
				},
				[]string{"transition"}, // "draft", "submit", "approve", "reject"
			),
			TransitionConflicts: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "skilltrack_rating_transition_conflicts_total",
					Help: "Transitions lost to a concurrent change of the same rating",
				},
			),
			NotificationsRequested: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skilltrack_notifications_requested_total",
					Help: "Notification requests written for delivery",
				},
				[]string{"kind"},
			),
			ProgressCacheTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "skilltrack_progress_cache_total",
					Help: "Progress cache lookups by result",
				},
				[]string{"result"}, // "hit", "miss", "error"
			),
			ProgressComputed: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "skilltrack_progress_computed_total",
					Help: "Category progress computations",
				},
			),
		}
	})
	return globalMetrics
}
