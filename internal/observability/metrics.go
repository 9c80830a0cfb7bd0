package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for a
// heatmap run.
type Metrics struct {
	RowsRead         prometheus.Counter
	RowsUnlocated    prometheus.Counter
	CoercionFailures *prometheus.CounterVec // labels: field
	BuildDuration    prometheus.Histogram

	// Generation metrics.
	HeatPoints       *prometheus.GaugeVec   // labels: layer
	LayerExclusions  *prometheus.CounterVec // labels: layer
	Markers          *prometheus.CounterVec // labels: color={red,blue,gray}
	GenerateDuration prometheus.Histogram
	ArtifactBytes    prometheus.Gauge
	ArtifactsWritten prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	reg := prometheus.NewRegistry()
	return newMetrics(reg, reg)
}

func newMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "rows_read_total",
			Help:      "Total dataset rows normalized.",
		}),
		RowsUnlocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "rows_unlocated_total",
			Help:      "Rows without a usable coordinate pair.",
		}),
		CoercionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "coercion_failures_total",
			Help:      "Numeric fields that failed coercion, by field.",
		}, []string{"field"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "build_duration_seconds",
			Help:      "Duration of configuration building.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		HeatPoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "heat_points",
			Help:      "Heat points rendered per layer.",
		}, []string{"layer"}),
		LayerExclusions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "layer_exclusions_total",
			Help:      "Located rows left out of a layer for a missing weight.",
		}, []string{"layer"}),
		Markers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "markers_total",
			Help:      "Markers rendered by pin color.",
		}, []string{"color"}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "heatmap",
			Name:      "generate_duration_seconds",
			Help:      "Duration of map generation including the file write.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		ArtifactBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "heatmap",
			Name:      "artifact_bytes",
			Help:      "Size of the last written map document.",
		}),
		ArtifactsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "heatmap",
			Name:      "artifacts_written_total",
			Help:      "Map documents written.",
		}),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.RowsRead,
		m.RowsUnlocated,
		m.CoercionFailures,
		m.BuildDuration,
		m.HeatPoints,
		m.LayerExclusions,
		m.Markers,
		m.GenerateDuration,
		m.ArtifactBytes,
		m.ArtifactsWritten,
	)

	return m
}

// WriteTextfile dumps the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
