package domain

import "time"

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// EarthquakeEvent is one catalog record. Timestamp is the unique key; the
// store guarantees no two events share one. Depth and Magnitude are nil when
// the catalog reported them as unmeasured ("-").
type EarthquakeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Geo       Geo       `json:"geo"`
	Depth     *float64  `json:"depth,omitempty"`
	Type      string    `json:"type,omitempty"`
	Magnitude *float64  `json:"magnitude,omitempty"`
}

// HasMagnitude reports whether the event carries a measured magnitude.
func (e EarthquakeEvent) HasMagnitude() bool {
	return e.Magnitude != nil
}

// Region is a geographic bounding box with inclusive edges.
type Region struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(lat, lon float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lon >= r.MinLon && lon <= r.MaxLon
}

// Marmara is the default monitoring region.
var Marmara = Region{MinLat: 39.0, MaxLat: 42.5, MinLon: 26.0, MaxLon: 30.8}
