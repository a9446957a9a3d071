// Package domain models earthquake catalog data for the Marmara region.
//
// # Data Source
//
// Events originate from the AFAD (Disaster and Emergency Management
// Authority of Türkiye) last-earthquakes page, which publishes recent
// events as an HTML table. The collector fetches the page on an interval,
// parses each row, and keeps only events inside the configured region
// bounding box. See the afad adapter for the row format.
//
// # Catalog Conventions
//
// Timestamp:
//
//	"2006-01-02 15:04:05" local catalog time. The timestamp is the unique
//	key of an event; the store deduplicates on it, so two catalog rows with
//	the same timestamp are treated as one event.
//
// Depth and magnitude:
//
//	AFAD uses "-" for unmeasured values. Parsed events carry these as nil
//	pointers rather than zero so analyzers can tell "no magnitude" from
//	"magnitude 0.0". The b-value estimator and the magnitude ladder only
//	consider events with a measured magnitude.
//
// Type:
//
//	Free-text classification from the catalog ("Ke" for earthquake, "Sm"
//	for suspected quarry blast, and so on). Carried through unmodified.
//
// # Region
//
// The default region is the Marmara box: latitude 39.0–42.5, longitude
// 26.0–30.8. Bounds are inclusive on all four edges.
//
// # Distance
//
// Haversine great-circle distance on a 6371.0 km sphere. Used by the
// spatial cluster detector with a fixed chaining threshold.
package domain
