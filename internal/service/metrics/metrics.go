package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	AdvisoryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stockpilot",
			Subsystem: "advisory",
			Name:      "latency_seconds",
			Help:      "Latency of advisory endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	AdvisoryErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stockpilot",
			Subsystem: "advisory",
			Name:      "errors_total",
			Help:      "Errors by advisory endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(AdvisoryLatency, AdvisoryErrors)
	})
}
