package analysis

import "github.com/rumixist/erken-deprem-ikazi/internal/domain"

// Fixed magnitude threshold ladder. The longer windows report the reduced
// ladder (≥3.0) to cut reporting noise from micro events.
var (
	fullLadder    = []float64{2.0, 3.0, 4.0, 5.0}
	reducedLadder = []float64{3.0, 4.0, 5.0}
)

const (
	thresholdModerate = 3.0
	thresholdStrong   = 4.0
)

// analyzeMagnitudes counts events at or above each ladder threshold per
// window and derives the qualitative activity comment from the 6h and 24h
// windows.
func analyzeMagnitudes(e6, e24, e7d, e30d []domain.EarthquakeEvent) MagnitudeSummary {
	s := MagnitudeSummary{
		Window6h:  ladderCounts(e6, fullLadder),
		Window24h: ladderCounts(e24, fullLadder),
		Window7d:  ladderCounts(e7d, reducedLadder),
		Window30d: ladderCounts(e30d, reducedLadder),
	}

	switch {
	case countAtOrAbove(e6, thresholdStrong) > 0 || countAtOrAbove(e24, thresholdStrong) > 0:
		s.Comment = CommentStrongActivity
	case countAtOrAbove(e6, thresholdModerate) > 0 || countAtOrAbove(e24, thresholdModerate) > 0:
		s.Comment = CommentModerateActivity
	default:
		s.Comment = CommentNoActivity
	}

	return s
}

func ladderCounts(events []domain.EarthquakeEvent, ladder []float64) []MagnitudeBin {
	bins := make([]MagnitudeBin, len(ladder))
	for i, threshold := range ladder {
		bins[i] = MagnitudeBin{Threshold: threshold, Count: countAtOrAbove(events, threshold)}
	}
	return bins
}

// countAtOrAbove counts events with a measured magnitude >= threshold.
func countAtOrAbove(events []domain.EarthquakeEvent, threshold float64) int {
	n := 0
	for _, e := range events {
		if e.HasMagnitude() && *e.Magnitude >= threshold {
			n++
		}
	}
	return n
}
