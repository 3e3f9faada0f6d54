package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdex",
			Name:      "engine_requests_total",
			Help:      "Total number of index engine requests",
		},
		[]string{"driver", "intent", "outcome"}, // outcome: ok, unavailable, timeout, query_error
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsdex",
			Name:      "engine_request_duration_seconds",
			Help:      "Index engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"driver", "intent"},
	)

	DegradedResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsdex",
			Name:      "degraded_responses_total",
			Help:      "Responses answered with an empty result after an engine failure",
		},
		[]string{"endpoint"},
	)
)

var registerEngineOnce sync.Once

// RegisterEngineMetrics registers the engine metrics on the default registry. Safe to call repeatedly.
func RegisterEngineMetrics() {
	registerEngineOnce.Do(func() {
		prometheus.MustRegister(EngineRequestsTotal)
		prometheus.MustRegister(EngineRequestDuration)
		prometheus.MustRegister(DegradedResponsesTotal)
	})
}
