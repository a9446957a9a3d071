package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://deprem.afad.gov.tr/last-earthquakes.html", cfg.AFADSourceURL)
	assert.Equal(t, 10*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "data/earthquakes.db", cfg.DatabasePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, 39.0, cfg.Region.MinLat)
	assert.Equal(t, 42.5, cfg.Region.MaxLat)
	assert.Equal(t, 26.0, cfg.Region.MinLon)
	assert.Equal(t, 30.8, cfg.Region.MaxLon)

	assert.Equal(t, 4.0, cfg.AlertMagnitude)
	assert.Equal(t, 20.0, cfg.ClusterDistanceKm)
	assert.Equal(t, 50, cfg.BValueMinEvents)
	assert.Equal(t, 2.0, cfg.AnomalyZThreshold)
	assert.Equal(t, 0.10, cfg.BValueComparisonBand)

	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("AFAD_SOURCE_URL", "http://localhost:9999/catalog.html")
	t.Setenv("FETCH_INTERVAL", "1m")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("DATABASE_PATH", "/tmp/eq.db")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REGION_MIN_LAT", "35.0")
	t.Setenv("REGION_MAX_LAT", "43.0")
	t.Setenv("REGION_MIN_LON", "25.0")
	t.Setenv("REGION_MAX_LON", "45.0")
	t.Setenv("ALERT_MAGNITUDE", "5.5")
	t.Setenv("CLUSTER_DISTANCE_KM", "30")
	t.Setenv("BVALUE_MIN_EVENTS", "100")
	t.Setenv("ANOMALY_Z_THRESHOLD", "3")
	t.Setenv("BVALUE_COMPARISON_BAND", "0.2")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_EVENT_TOPIC", "quakes")
	t.Setenv("KAFKA_ANALYSIS_TOPIC", "quake-analysis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/catalog.html", cfg.AFADSourceURL)
	assert.Equal(t, time.Minute, cfg.FetchInterval)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "/tmp/eq.db", cfg.DatabasePath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 35.0, cfg.Region.MinLat)
	assert.Equal(t, 43.0, cfg.Region.MaxLat)
	assert.Equal(t, 5.5, cfg.AlertMagnitude)
	assert.Equal(t, 30.0, cfg.ClusterDistanceKm)
	assert.Equal(t, 100, cfg.BValueMinEvents)
	assert.Equal(t, 3.0, cfg.AnomalyZThreshold)
	assert.Equal(t, 0.2, cfg.BValueComparisonBand)

	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "quakes", cfg.KafkaEventTopic)
	assert.Equal(t, "quake-analysis", cfg.KafkaAnalysisTopic)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad fetch interval", "FETCH_INTERVAL", "soon"},
		{"negative fetch interval", "FETCH_INTERVAL", "-1m"},
		{"bad cluster distance", "CLUSTER_DISTANCE_KM", "twenty"},
		{"zero cluster distance", "CLUSTER_DISTANCE_KM", "0"},
		{"bvalue minimum too small", "BVALUE_MIN_EVENTS", "1"},
		{"bad region latitude", "REGION_MIN_LAT", "north"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_InvertedRegion(t *testing.T) {
	t.Setenv("REGION_MIN_LAT", "43.0")
	t.Setenv("REGION_MAX_LAT", "39.0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region bounds")
}
