package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		p := Geo{Lat: 40.7128, Lon: 29.0}
		assert.InDelta(t, 0, HaversineKm(p, p), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Geo{Lat: 40.9923, Lon: 28.8}
		b := Geo{Lat: 39.75, Lon: 30.4}
		assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a := Geo{Lat: 40.0, Lon: 29.0}
		b := Geo{Lat: 41.0, Lon: 29.0}
		// 2π·6371/360 ≈ 111.19 km
		assert.InDelta(t, 111.19, HaversineKm(a, b), 0.05)
	})

	t.Run("one degree of longitude at the equator", func(t *testing.T) {
		a := Geo{Lat: 0, Lon: 10.0}
		b := Geo{Lat: 0, Lon: 11.0}
		assert.InDelta(t, 111.19, HaversineKm(a, b), 0.05)
	})

	t.Run("istanbul to ankara", func(t *testing.T) {
		istanbul := Geo{Lat: 41.0082, Lon: 28.9784}
		ankara := Geo{Lat: 39.9334, Lon: 32.8597}
		assert.InDelta(t, 351, HaversineKm(istanbul, ankara), 2)
	})
}

func TestRegionContains(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"inside", 40.7, 29.0, true},
		{"min lat edge", 39.0, 29.0, true},
		{"max lat edge", 42.5, 29.0, true},
		{"min lon edge", 40.0, 26.0, true},
		{"max lon edge", 40.0, 30.8, true},
		{"south of region", 38.9, 29.0, false},
		{"east of region", 40.0, 30.9, false},
		{"ankara", 39.9334, 32.8597, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Marmara.Contains(tt.lat, tt.lon))
		})
	}
}

func TestHasMagnitude(t *testing.T) {
	m := 3.2
	assert.True(t, EarthquakeEvent{Magnitude: &m}.HasMagnitude())
	assert.False(t, EarthquakeEvent{}.HasMagnitude())
}
