package analysis

import (
	"context"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// refTime is the frozen "now" used across analysis tests.
var refTime = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)

func eventAt(ts time.Time, lat, lon float64, mag *float64) domain.EarthquakeEvent {
	return domain.EarthquakeEvent{
		Timestamp: ts,
		Geo:       domain.Geo{Lat: lat, Lon: lon},
		Type:      "Ke",
		Magnitude: mag,
	}
}

func mag(v float64) *float64 { return &v }

// sliceSource serves a fixed ascending event list, filtering by threshold
// like the real store. A non-nil err fails every query.
type sliceSource struct {
	events []domain.EarthquakeEvent
	err    error
}

func (s *sliceSource) EventsSince(_ context.Context, threshold time.Time) ([]domain.EarthquakeEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.EarthquakeEvent
	for _, e := range s.events {
		if !e.Timestamp.Before(threshold) {
			out = append(out, e)
		}
	}
	return out, nil
}
