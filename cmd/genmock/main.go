// Command genmock seeds a synthetic Marmara earthquake catalog into a SQLite
// store for demos and load testing. Magnitudes follow a Gutenberg-Richter
// exponential distribution; a fraction of events is placed around fixed
// hotspots so the cluster detector has something to find.
//
// Usage:
//
//	go run ./cmd/genmock -db data/earthquakes.db -days 90 -per-day 8 -seed 1
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
	"github.com/rumixist/erken-deprem-ikazi/internal/store"
)

// Hotspots roughly along the North Anatolian Fault in the Marmara Sea.
var hotspots = []domain.Geo{
	{Lat: 40.72, Lon: 29.10},
	{Lat: 40.82, Lon: 27.45},
	{Lat: 40.44, Lon: 26.70},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dbPath := flag.String("db", "data/earthquakes.db", "path to the SQLite event store")
	days := flag.Int("days", 90, "number of days of history to generate")
	perDay := flag.Float64("per-day", 8, "mean events per day")
	seed := flag.Int64("seed", 1, "random seed for reproducible catalogs")
	flag.Parse()

	db, err := store.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	rng := rand.New(rand.NewSource(*seed))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	total := int(float64(*days) * *perDay)
	added := 0
	for i := 0; i < total; i++ {
		e := randomEvent(rng, now, *days)
		stored, err := db.InsertEvent(ctx, e)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		if stored {
			added++
		}
	}

	log.Printf("generated %d events (%d stored) over %d days into %s", total, added, *days, *dbPath)
	return nil
}

func randomEvent(rng *rand.Rand, now time.Time, days int) domain.EarthquakeEvent {
	// Second-resolution offsets; duplicate timestamps are deduplicated by the
	// store, matching real catalog behavior.
	offset := time.Duration(rng.Int63n(int64(days)*24*3600)) * time.Second
	ts := now.Add(-offset)

	var geo domain.Geo
	if rng.Float64() < 0.6 {
		// Scatter around a hotspot, sigma roughly 8 km.
		h := hotspots[rng.Intn(len(hotspots))]
		geo = domain.Geo{
			Lat: h.Lat + rng.NormFloat64()*0.07,
			Lon: h.Lon + rng.NormFloat64()*0.09,
		}
	} else {
		geo = domain.Geo{
			Lat: domain.Marmara.MinLat + rng.Float64()*(domain.Marmara.MaxLat-domain.Marmara.MinLat),
			Lon: domain.Marmara.MinLon + rng.Float64()*(domain.Marmara.MaxLon-domain.Marmara.MinLon),
		}
	}

	// Gutenberg-Richter: exponential magnitude distribution above 1.0,
	// truncated at 6.5. b ≈ 1 means rate parameter b·ln(10).
	mag := 1.0 + rng.ExpFloat64()/(1.0*math.Ln10)
	if mag > 6.5 {
		mag = 6.5
	}
	mag = math.Round(mag*10) / 10

	depth := math.Round(rng.Float64()*200) / 10 // 0–20 km

	return domain.EarthquakeEvent{
		Timestamp: ts,
		Geo:       geo,
		Depth:     &depth,
		Type:      "Ke",
		Magnitude: &mag,
	}
}
