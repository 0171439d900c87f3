package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// summary pipeline.
type Metrics struct {
	RecordsConsumed    prometheus.Counter
	RecordsAccumulated prometheus.Counter
	RecordsMalformed   prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Normalization metrics.
	UnrecognizedCodes prometheus.Counter
	CategoryRecords   *prometheus.CounterVec // label: category (slug)

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Snapshot publishing metrics.
	SnapshotsPublished    prometheus.Counter
	SnapshotPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "records_consumed_total",
			Help:      "Total raw records read from the source topic.",
		}),
		RecordsAccumulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "records_accumulated_total",
			Help:      "Total records folded into the running summary.",
		}),
		RecordsMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "records_malformed_total",
			Help:      "Total structurally malformed records skipped.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_summary",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		UnrecognizedCodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "unrecognized_magnitude_codes_total",
			Help:      "Damage fields zeroed out due to a magnitude code outside the documented alphabet.",
		}),
		CategoryRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "category_records_total",
			Help:      "Records accumulated per canonical category.",
		}, []string{"category"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_summary",
			Name:      "batch_size",
			Help:      "Number of records per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_summary",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-accumulate cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "snapshots_published_total",
			Help:      "Summary snapshots written to the sink topic.",
		}),
		SnapshotPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_summary",
			Name:      "snapshot_publish_errors_total",
			Help:      "Failed snapshot publish attempts.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsConsumed,
		m.RecordsAccumulated,
		m.RecordsMalformed,
		m.PipelineRunning,
		m.UnrecognizedCodes,
		m.CategoryRecords,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SnapshotsPublished,
		m.SnapshotPublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsConsumed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "records_consumed_total"}),
		RecordsAccumulated:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "records_accumulated_total"}),
		RecordsMalformed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "records_malformed_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_summary", Name: "pipeline_running"}),
		UnrecognizedCodes:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "unrecognized_magnitude_codes_total"}),
		CategoryRecords:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_summary", Name: "category_records_total"}, []string{"category"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_summary", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_summary", Name: "batch_processing_duration_seconds"}),
		SnapshotsPublished:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "snapshots_published_total"}),
		SnapshotPublishErrors:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_summary", Name: "snapshot_publish_errors_total"}),
	}
}
