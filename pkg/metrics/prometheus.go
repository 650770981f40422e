package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsLoaded  *prometheus.GaugeVec
	errorsTotal *prometheus.CounterVec
	cacheTotal  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsLoaded: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockdash_rows_loaded",
				Help: "Number of rows parsed from the source file on the last load",
			},
			[]string{"file"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		cacheTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockdash_table_cache_lookups_total",
				Help: "Memoized table load lookups by result",
			},
			[]string{"result"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockdash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordRowsLoaded records the row count of a completed load.
func (r *Recorder) RecordRowsLoaded(file string, rows int) {
	r.rowsLoaded.WithLabelValues(file).Set(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCacheLookup records a memoized load hit or miss.
func (r *Recorder) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
