package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// yearset pipeline.
type Metrics struct {
	CatalogsConsumed prometheus.Counter
	YearsetsProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Sampling metrics.
	SamplingDuration prometheus.Histogram
	CorrectionFactor prometheus.Histogram
	RecordSource     *prometheus.CounterVec // labels: source={fresh,reused,cached}
	RecordCache      *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		CatalogsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yearset",
			Name:      "catalogs_consumed_total",
			Help:      "Total catalog requests read from the source topic.",
		}),
		YearsetsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yearset",
			Name:      "yearsets_produced_total",
			Help:      "Total yearset results written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yearset",
			Name:      "transform_errors_total",
			Help:      "Total catalog requests that failed to produce a yearset.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yearset",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yearset",
			Name:      "batch_size",
			Help:      "Number of catalog requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yearset",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SamplingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yearset",
			Name:      "sampling_duration_seconds",
			Help:      "Duration of one catalog's yearset build.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		CorrectionFactor: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yearset",
			Name:      "correction_factor",
			Help:      "Applied correction factors; values far from 1 flag biased samples.",
			Buckets:   []float64{0.5, 0.75, 0.9, 0.95, 1, 1.05, 1.1, 1.25, 1.5, 2},
		}),
		RecordSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yearset",
			Name:      "record_source_total",
			Help:      "Yearsets produced by sampling record provenance.",
		}, []string{"source"}),
		RecordCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yearset",
			Name:      "record_cache_total",
			Help:      "Hazard group record cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.CatalogsConsumed,
		m.YearsetsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SamplingDuration,
		m.CorrectionFactor,
		m.RecordSource,
		m.RecordCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		CatalogsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "yearset", Name: "catalogs_consumed_total"}),
		YearsetsProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "yearset", Name: "yearsets_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "yearset", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "yearset", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "yearset", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "yearset", Name: "batch_processing_duration_seconds"}),
		SamplingDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "yearset", Name: "sampling_duration_seconds"}),
		CorrectionFactor:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "yearset", Name: "correction_factor"}),
		RecordSource:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "yearset", Name: "record_source_total"}, []string{"source"}),
		RecordCache:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "yearset", Name: "record_cache_total"}, []string{"result"}),
	}
}
