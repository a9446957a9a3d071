package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// ingestion loop and the analysis engine.
type Metrics struct {
	EventsFetched prometheus.Counter
	EventsStored  prometheus.Counter
	FetchErrors   prometheus.Counter
	FetchDuration prometheus.Histogram
	IngestRunning prometheus.Gauge

	// Alerting metrics.
	AlertsRaised prometheus.Counter

	// Analysis metrics.
	AnalysisRuns      prometheus.Counter
	AnalysisDuration  prometheus.Histogram
	ClustersDetected  prometheus.Gauge
	LastAnalysisUnix  prometheus.Gauge
	WindowQueryErrors prometheus.Counter

	// Kafka publishing metrics.
	KafkaPublished *prometheus.CounterVec // labels: topic
	KafkaErrors    *prometheus.CounterVec // labels: topic
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.EventsFetched,
		m.EventsStored,
		m.FetchErrors,
		m.FetchDuration,
		m.IngestRunning,
		m.AlertsRaised,
		m.AnalysisRuns,
		m.AnalysisDuration,
		m.ClustersDetected,
		m.LastAnalysisUnix,
		m.WindowQueryErrors,
		m.KafkaPublished,
		m.KafkaErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "events_fetched_total",
			Help:      "Total in-region events parsed from the AFAD catalog page.",
		}),
		EventsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "events_stored_total",
			Help:      "Total new events appended to the store (after timestamp dedup).",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "fetch_errors_total",
			Help:      "Total failed catalog fetch attempts.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seismic",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete fetch-parse-store cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "ingest_running",
			Help:      "1 when the ingestion loop is active, 0 when shut down.",
		}),
		AlertsRaised: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "alerts_raised_total",
			Help:      "Total newly stored events at or above the alert magnitude.",
		}),
		AnalysisRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "analysis_runs_total",
			Help:      "Total completed analysis runs.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seismic",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a full analysis run across all analyzers.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		ClustersDetected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "clusters_detected",
			Help:      "Spatial clusters found in the most recent analysis run.",
		}),
		LastAnalysisUnix: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "seismic",
			Name:      "last_analysis_timestamp_seconds",
			Help:      "Unix time of the most recent completed analysis run.",
		}),
		WindowQueryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "window_query_errors_total",
			Help:      "Store queries that failed and degraded to an empty window.",
		}),
		KafkaPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "kafka_published_total",
			Help:      "Messages published to Kafka by topic.",
		}, []string{"topic"}),
		KafkaErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seismic",
			Name:      "kafka_errors_total",
			Help:      "Failed Kafka publishes by topic.",
		}, []string{"topic"}),
	}
}
