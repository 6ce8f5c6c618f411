package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamFetches *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	advicesTotal    *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		upstreamFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_upstream_fetches_total",
				Help: "Total number of upstream data fetches",
			},
			[]string{"provider", "ticker"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_cache_events_total",
				Help: "Fetch cache hits and misses",
			},
			[]string{"outcome"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpilot_last_price",
				Help: "Last observed price for a ticker",
			},
			[]string{"ticker"},
		),
		advicesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpilot_advices_total",
				Help: "Total advice results produced, by action",
			},
			[]string{"action"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpilot_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch records an upstream data fetch.
func (r *Recorder) RecordFetch(provider, ticker string) {
	r.upstreamFetches.WithLabelValues(provider, ticker).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheHit records a fetch cache hit.
func (r *Recorder) RecordCacheHit() {
	r.cacheEvents.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a fetch cache miss.
func (r *Recorder) RecordCacheMiss() {
	r.cacheEvents.WithLabelValues("miss").Inc()
}

// RecordLastPrice records the last observed price for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordAdvice records a produced advice result.
func (r *Recorder) RecordAdvice(action string) {
	r.advicesTotal.WithLabelValues(action).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
