package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	PollsTotal        prometheus.Counter
	PollErrors        *prometheus.CounterVec
	ChangesDetected   *prometheus.CounterVec
	NotificationsSent prometheus.Counter
	FlightsTracked    prometheus.Gauge
	PollCycleTime     prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		PollsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "The total number of per-flight poll cycles",
		}),
		PollErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_errors_total",
			Help:      "The total number of recoverable errors by operation",
		}, []string{"operation"}),
		ChangesDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_detected_total",
			Help:      "The total number of detected flight changes by type",
		}, []string{"type"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of change notifications posted",
		}),
		FlightsTracked: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flights_tracked",
			Help:      "The number of flights currently being polled",
		}),
		PollCycleTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_cycle_seconds",
			Help:      "Time taken by one poll cycle",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
