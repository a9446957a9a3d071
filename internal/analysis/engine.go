// Package analysis implements the seismic analysis engine: event-rate and
// anomaly statistics, spatial clustering, magnitude-threshold distributions,
// and Gutenberg-Richter b-value estimates over a read-only event snapshot.
package analysis

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
	"github.com/rumixist/erken-deprem-ikazi/internal/observability"
)

// Config holds the fixed analysis constants. Exposed for tuning; never
// derived from data.
type Config struct {
	ClusterDistanceKm float64
	MinBValueEvents   int
	ZScoreThreshold   float64
	BValueBand        float64
}

// DefaultConfig returns the operational defaults: 20 km chaining distance,
// 50-event b-value minimum, ±2σ anomaly threshold, ±10% comparison band.
func DefaultConfig() Config {
	return Config{
		ClusterDistanceKm: 20.0,
		MinBValueEvents:   50,
		ZScoreThreshold:   2.0,
		BValueBand:        0.10,
	}
}

// Engine runs the four analyzers over one snapshot of the event store.
type Engine struct {
	src     EventSource
	cfg     Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates an Engine over the given event source.
func New(src EventSource, cfg Config, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{src: src, cfg: cfg, logger: logger, metrics: metrics}
}

// Run executes one analysis over the store as of the domain clock's now.
// It always returns a Result: a failed window query degrades that window to
// empty and the affected analyzers report their insufficient-data markers.
func (e *Engine) Run(ctx context.Context) Result {
	start := time.Now()
	ref := domain.Now()

	// Materialize each lookback window once; the analyzers share the
	// read-only slices and hold no other state, so they can run in parallel.
	e6 := e.window(ctx, ref, Hours(6))
	e24 := e.window(ctx, ref, Hours(24))
	e7d := e.window(ctx, ref, Days(7))
	e30d := e.window(ctx, ref, Days(30))
	e90d := e.window(ctx, ref, Days(90))

	var result Result
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		result.SeismicRate = analyzeRate(e6, e24, e7d, e30d, e.cfg.ZScoreThreshold)
	}()
	go func() {
		defer wg.Done()
		result.Clustering = detectClusters(e24, e.cfg.ClusterDistanceKm)
	}()
	go func() {
		defer wg.Done()
		result.MagnitudeDistribution = analyzeMagnitudes(e6, e24, e7d, e30d)
	}()
	go func() {
		defer wg.Done()
		w7 := estimateBValue(e7d, e.cfg.MinBValueEvents)
		w30 := estimateBValue(e30d, e.cfg.MinBValueEvents)
		w90 := estimateBValue(e90d, e.cfg.MinBValueEvents)
		result.BValue = BValueSummary{
			Window7d:  w7,
			Window30d: w30,
			Window90d: w90,
			Trend:     compareBValues(w7, w30, e.cfg.BValueBand),
		}
	}()

	wg.Wait()

	result.LastUpdated = ref.UTC().Format(time.RFC3339)

	if e.metrics != nil {
		e.metrics.AnalysisRuns.Inc()
		e.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		e.metrics.ClustersDetected.Set(float64(len(result.Clustering)))
		e.metrics.LastAnalysisUnix.Set(float64(ref.Unix()))
	}
	e.logger.Info("analysis complete",
		"events_30d", result.SeismicRate.Count30d,
		"clusters", len(result.Clustering),
		"classification", result.SeismicRate.Classification,
	)

	return result
}

// window fetches one lookback window, degrading to an empty slice when the
// store query fails. The run continues with whatever could be read.
func (e *Engine) window(ctx context.Context, ref time.Time, lb Lookback) []domain.EarthquakeEvent {
	events, err := WindowEvents(ctx, e.src, ref, lb)
	if err != nil {
		e.logger.Warn("window query failed, continuing with empty window",
			"hours", lb.Hours, "days", lb.Days, "error", err)
		if e.metrics != nil {
			e.metrics.WindowQueryErrors.Inc()
		}
		return nil
	}
	return events
}
