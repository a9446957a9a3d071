package analysis

import (
	"math"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

const (
	longTermDays  = 30
	longTermHours = longTermDays * 24

	// minRateBaseline gates the rate ratios: a near-zero baseline makes the
	// ratio meaningless, so it is omitted instead.
	minRateBaseline = 0.01

	// minAnomalyEvents is the smallest 30d count for which the daily-count
	// statistics are considered meaningful.
	minAnomalyEvents = 30

	// minDailyStdev skips the z-score when the daily rate is near-constant.
	minDailyStdev = 0.1
)

// analyzeRate computes event-rate counts, long-term baselines, rate ratios,
// and the z-score anomaly classification over the nested windows.
func analyzeRate(e6, e24, e7d, e30d []domain.EarthquakeEvent, zThreshold float64) RateSummary {
	s := RateSummary{
		Count6h:        len(e6),
		Count24h:       len(e24),
		Count7d:        len(e7d),
		Count30d:       len(e30d),
		Classification: ClassificationInsufficient,
	}

	s.AvgDaily30d = float64(s.Count30d) / longTermDays
	s.AvgHourly30d = float64(s.Count30d) / longTermHours

	if s.AvgHourly30d > minRateBaseline {
		r := float64(s.Count6h) / (s.AvgHourly30d * 6)
		s.Ratio6h = &r
	}
	if s.AvgDaily30d > minRateBaseline {
		r := float64(s.Count24h) / s.AvgDaily30d
		s.Ratio24h = &r
	}

	if s.Count30d < minAnomalyEvents {
		return s
	}

	counts := dailyCounts(e30d)
	if len(counts) < 2 {
		return s
	}

	mean := meanFloat(counts)
	stdev := sampleStdev(counts, mean)
	s.MeanDaily = &mean
	s.StdevDaily = &stdev

	if stdev <= minDailyStdev {
		return s
	}

	z := (float64(s.Count24h) - mean) / stdev
	s.ZScore24h = &z

	switch {
	case z > zThreshold:
		s.Classification = ClassificationIncrease
	case z < -zThreshold:
		s.Classification = ClassificationDecrease
	default:
		s.Classification = ClassificationNormal
	}

	return s
}

// dailyCounts groups events by UTC calendar date and returns the per-day
// counts for days with at least one event.
func dailyCounts(events []domain.EarthquakeEvent) []float64 {
	byDay := make(map[time.Time]int)
	for _, e := range events {
		day := e.Timestamp.UTC().Truncate(24 * time.Hour)
		byDay[day]++
	}

	counts := make([]float64, 0, len(byDay))
	for _, n := range byDay {
		counts = append(counts, float64(n))
	}
	return counts
}

func meanFloat(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdev is the n−1 (sample) standard deviation.
func sampleStdev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
