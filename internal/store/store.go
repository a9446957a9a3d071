// Package store persists the earthquake catalog in SQLite. The timestamp is
// the primary key, so re-ingesting a catalog page is idempotent: INSERT OR
// IGNORE drops rows already seen.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS earthquakes (
    timestamp_ns INTEGER PRIMARY KEY,
    latitude     REAL NOT NULL,
    longitude    REAL NOT NULL,
    depth_km     REAL,
    type         TEXT,
    magnitude    REAL
);

CREATE INDEX IF NOT EXISTS idx_earthquakes_magnitude ON earthquakes(magnitude);
`

// Store is the SQLite-backed event store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at the given path and applies the schema.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InsertEvent appends an event, deduplicating on timestamp. Returns true when
// the event was newly stored, false when an event with the same timestamp
// already existed.
func (s *Store) InsertEvent(ctx context.Context, e domain.EarthquakeEvent) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO earthquakes (timestamp_ns, latitude, longitude, depth_km, type, magnitude)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().UnixNano(), e.Geo.Lat, e.Geo.Lon,
		nullableFloat(e.Depth), e.Type, nullableFloat(e.Magnitude),
	)
	if err != nil {
		return false, fmt.Errorf("insert event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// EventsSince returns all events with timestamp >= threshold, ascending by timestamp.
func (s *Store) EventsSince(ctx context.Context, threshold time.Time) ([]domain.EarthquakeEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp_ns, latitude, longitude, depth_km, type, magnitude
		FROM earthquakes
		WHERE timestamp_ns >= ?
		ORDER BY timestamp_ns ASC`,
		threshold.UTC().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.EarthquakeEvent
	for rows.Next() {
		var (
			ns               int64
			lat, lon         float64
			depth, magnitude sql.NullFloat64
			eventType        sql.NullString
		)
		if err := rows.Scan(&ns, &lat, &lon, &depth, &eventType, &magnitude); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, domain.EarthquakeEvent{
			Timestamp: time.Unix(0, ns).UTC(),
			Geo:       domain.Geo{Lat: lat, Lon: lon},
			Depth:     floatPtr(depth),
			Type:      eventType.String,
			Magnitude: floatPtr(magnitude),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// CountEvents returns the total number of stored events.
func (s *Store) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM earthquakes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
