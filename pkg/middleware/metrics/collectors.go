// middleware/metrics/collectors.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	dispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "time spent resolving and executing one dispatch.",
			Buckets: []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1, 5, 30},
		},
	)

	totalDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_dispatches", Help: "dispatches by request identity and outcome"},
		[]string{"request", "outcome"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code and method"},
		[]string{"code", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		dispatchDuration,
		totalDispatches,
		totalHttpRequests,
	)
}
