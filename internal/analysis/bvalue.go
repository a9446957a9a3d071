package analysis

import (
	"math"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// mcOffset is the heuristic completeness-magnitude offset above the smallest
// observed magnitude. Not a statistically rigorous Mc method.
const mcOffset = 0.05

// estimateBValue computes the Gutenberg-Richter b-value for one window via
// the maximum-likelihood approximation b = log10(e) / (mean − Mc).
// Fewer than minEvents measured magnitudes yields BValueInsufficient; a mean
// at or below Mc yields BValueDegenerate with Mc still reported.
func estimateBValue(events []domain.EarthquakeEvent, minEvents int) BValueWindow {
	var magnitudes []float64
	for _, e := range events {
		if e.HasMagnitude() {
			magnitudes = append(magnitudes, *e.Magnitude)
		}
	}

	w := BValueWindow{EventCount: len(magnitudes), Status: BValueInsufficient}
	if len(magnitudes) < minEvents {
		return w
	}

	mc := minFloat(magnitudes) + mcOffset
	w.Mc = &mc

	mean := meanFloat(magnitudes)
	if mean <= mc {
		w.Status = BValueDegenerate
		return w
	}

	b := math.Log10(math.E) / (mean - mc)
	w.BValue = &b
	w.Status = BValueOK
	return w
}

// compareBValues classifies the 7d estimate against the 30d estimate using
// the ±band comparison window (band 0.10 means ±10%).
func compareBValues(short, long BValueWindow, band float64) string {
	if short.BValue == nil || long.BValue == nil {
		return TrendInsufficient
	}
	switch {
	case *short.BValue < *long.BValue*(1-band):
		return TrendLower
	case *short.BValue > *long.BValue*(1+band):
		return TrendHigher
	default:
		return TrendStable
	}
}

func minFloat(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
