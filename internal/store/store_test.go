package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "earthquakes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func makeEvent(ts time.Time, mag float64) domain.EarthquakeEvent {
	depth := 7.2
	return domain.EarthquakeEvent{
		Timestamp: ts,
		Geo:       domain.Geo{Lat: 40.7, Lon: 29.1},
		Depth:     &depth,
		Type:      "Ke",
		Magnitude: &mag,
	}
}

func TestInsertEvent_Dedup(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, 4, 23, 21, 47, 10, 0, time.UTC)

	stored, err := s.InsertEvent(ctx, makeEvent(ts, 3.1))
	require.NoError(t, err)
	assert.True(t, stored)

	// Same timestamp again, even with different fields, is ignored.
	stored, err = s.InsertEvent(ctx, makeEvent(ts, 4.9))
	require.NoError(t, err)
	assert.False(t, stored)

	n, err := s.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	events, err := s.EventsSince(ctx, ts.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Magnitude)
	assert.Equal(t, 3.1, *events[0].Magnitude)
}

func TestEventsSince_OrderAndThreshold(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		_, err := s.InsertEvent(ctx, makeEvent(base.Add(offset), 2.0))
		require.NoError(t, err)
	}

	events, err := s.EventsSince(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, base.Add(2*time.Hour), events[0].Timestamp)
	assert.Equal(t, base.Add(3*time.Hour), events[1].Timestamp)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp))
	}

	// Threshold is inclusive.
	events, err = s.EventsSince(ctx, base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)

	events, err = s.EventsSince(ctx, base.Add(3*time.Hour+time.Second))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventsSince_NullFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, 4, 23, 9, 30, 0, 0, time.UTC)

	// Catalog rows with "-" depth/magnitude come through as nil.
	_, err := s.InsertEvent(ctx, domain.EarthquakeEvent{
		Timestamp: ts,
		Geo:       domain.Geo{Lat: 40.1, Lon: 27.5},
		Type:      "Sm",
	})
	require.NoError(t, err)

	events, err := s.EventsSince(ctx, ts)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Nil(t, events[0].Depth)
	assert.Nil(t, events[0].Magnitude)
	assert.Equal(t, "Sm", events[0].Type)
	assert.Equal(t, 40.1, events[0].Geo.Lat)
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "earthquakes.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.CountEvents(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
