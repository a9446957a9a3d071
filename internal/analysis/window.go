package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// ErrNoLookback is returned when a window is requested without a duration.
var ErrNoLookback = errors.New("analysis: lookback requires hours or days")

// EventSource is the read-only capability the engine needs from the event
// store: all events at or after a threshold, ascending by timestamp.
type EventSource interface {
	EventsSince(ctx context.Context, threshold time.Time) ([]domain.EarthquakeEvent, error)
}

// Lookback selects the suffix of the catalog at or after reference − duration.
// Exactly one of Hours or Days must be set.
type Lookback struct {
	Hours int
	Days  int
}

// Hours builds an hour-based lookback.
func Hours(n int) Lookback { return Lookback{Hours: n} }

// Days builds a day-based lookback.
func Days(n int) Lookback { return Lookback{Days: n} }

// Duration converts the lookback to a time.Duration, failing with
// ErrNoLookback when neither field is set.
func (l Lookback) Duration() (time.Duration, error) {
	switch {
	case l.Hours > 0:
		return time.Duration(l.Hours) * time.Hour, nil
	case l.Days > 0:
		return time.Duration(l.Days) * 24 * time.Hour, nil
	default:
		return 0, ErrNoLookback
	}
}

// WindowEvents materializes the event subsequence for one lookback window,
// ascending by timestamp. The underlying source error is returned as-is so
// callers can degrade to an empty window.
func WindowEvents(ctx context.Context, src EventSource, ref time.Time, lb Lookback) ([]domain.EarthquakeEvent, error) {
	d, err := lb.Duration()
	if err != nil {
		return nil, err
	}
	return src.EventsSince(ctx, ref.Add(-d))
}
