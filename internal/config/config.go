package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AFADSourceURL string
	FetchInterval time.Duration
	FetchTimeout  time.Duration

	DatabasePath string

	Region domain.Region

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// AlertMagnitude flags newly ingested events at or above this magnitude.
	AlertMagnitude float64

	// Analysis tunables. Lookback windows and the magnitude ladder are fixed
	// design constants owned by the analysis package.
	ClusterDistanceKm    float64
	BValueMinEvents      int
	AnomalyZThreshold    float64
	BValueComparisonBand float64

	// Kafka publishing is enabled when brokers are configured.
	KafkaBrokers       []string
	KafkaEventTopic    string
	KafkaAnalysisTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchInterval, err := parseDuration("FETCH_INTERVAL", "10m")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "20s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	region, err := parseRegion()
	if err != nil {
		return nil, err
	}

	alertMagnitude, err := parseFloat("ALERT_MAGNITUDE", 4.0)
	if err != nil {
		return nil, err
	}
	clusterDistance, err := parseFloat("CLUSTER_DISTANCE_KM", 20.0)
	if err != nil {
		return nil, err
	}
	zThreshold, err := parseFloat("ANOMALY_Z_THRESHOLD", 2.0)
	if err != nil {
		return nil, err
	}
	bValueBand, err := parseFloat("BVALUE_COMPARISON_BAND", 0.10)
	if err != nil {
		return nil, err
	}
	bValueMin, err := parseInt("BVALUE_MIN_EVENTS", 50)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		AFADSourceURL: envOrDefault("AFAD_SOURCE_URL", "https://deprem.afad.gov.tr/last-earthquakes.html"),
		FetchInterval: fetchInterval,
		FetchTimeout:  fetchTimeout,

		DatabasePath: envOrDefault("DATABASE_PATH", "data/earthquakes.db"),

		Region: region,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AlertMagnitude: alertMagnitude,

		ClusterDistanceKm:    clusterDistance,
		BValueMinEvents:      bValueMin,
		AnomalyZThreshold:    zThreshold,
		BValueComparisonBand: bValueBand,

		KafkaBrokers:       brokers,
		KafkaEventTopic:    envOrDefault("KAFKA_EVENT_TOPIC", "marmara-earthquakes"),
		KafkaAnalysisTopic: envOrDefault("KAFKA_ANALYSIS_TOPIC", "seismic-analysis"),
		KafkaEnabled:       len(brokers) > 0,
	}

	if cfg.DatabasePath == "" {
		return nil, errors.New("DATABASE_PATH is required")
	}
	if cfg.ClusterDistanceKm <= 0 {
		return nil, errors.New("CLUSTER_DISTANCE_KM must be positive")
	}
	if cfg.BValueMinEvents < 2 {
		return nil, errors.New("BVALUE_MIN_EVENTS must be at least 2")
	}
	if cfg.BValueComparisonBand < 0 {
		return nil, errors.New("BVALUE_COMPARISON_BAND must not be negative")
	}
	if cfg.Region.MinLat >= cfg.Region.MaxLat || cfg.Region.MinLon >= cfg.Region.MaxLon {
		return nil, errors.New("region bounds are inverted")
	}

	return cfg, nil
}

func parseRegion() (domain.Region, error) {
	minLat, err := parseFloat("REGION_MIN_LAT", domain.Marmara.MinLat)
	if err != nil {
		return domain.Region{}, err
	}
	maxLat, err := parseFloat("REGION_MAX_LAT", domain.Marmara.MaxLat)
	if err != nil {
		return domain.Region{}, err
	}
	minLon, err := parseFloat("REGION_MIN_LON", domain.Marmara.MinLon)
	if err != nil {
		return domain.Region{}, err
	}
	maxLon, err := parseFloat("REGION_MAX_LON", domain.Marmara.MaxLon)
	if err != nil {
		return domain.Region{}, err
	}
	return domain.Region{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
