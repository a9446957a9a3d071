package analysis

import (
	"sort"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// detectClusters partitions the window's events into maximal groups where
// every member is reachable through a chain of pairwise distances at or
// under thresholdKm (single-linkage with a hard cutoff). Components of size
// one are dropped as noise. Traversal follows ascending time-index order, so
// membership and the reported max-magnitude member are reproducible.
func detectClusters(events []domain.EarthquakeEvent, thresholdKm float64) []ClusterSummary {
	if len(events) == 0 {
		return nil
	}

	visited := make([]bool, len(events))
	var clusters []ClusterSummary

	for i := range events {
		if visited[i] {
			continue
		}

		// Breadth-first expansion from the seed: every unvisited event within
		// threshold of any member joins, so connectivity is transitive.
		component := []int{i}
		visited[i] = true
		frontier := []int{i}

		for len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]

			for j := range events {
				if visited[j] {
					continue
				}
				if domain.HaversineKm(events[cur].Geo, events[j].Geo) <= thresholdKm {
					visited[j] = true
					component = append(component, j)
					frontier = append(frontier, j)
				}
			}
		}

		if len(component) < 2 {
			continue
		}
		// Magnitude ties break toward the earliest event, so the summary
		// walks members in ascending time-index order, not discovery order.
		sort.Ints(component)
		clusters = append(clusters, summarizeCluster(events, component))
	}

	return clusters
}

// summarizeCluster derives the centroid and the highest-magnitude member.
// Events without a measured magnitude are excluded from the max; ties keep
// the earliest-encountered member.
func summarizeCluster(events []domain.EarthquakeEvent, component []int) ClusterSummary {
	var sumLat, sumLon float64
	var maxEvent *domain.EarthquakeEvent

	for _, idx := range component {
		e := events[idx]
		sumLat += e.Geo.Lat
		sumLon += e.Geo.Lon

		if !e.HasMagnitude() {
			continue
		}
		if maxEvent == nil || *e.Magnitude > *maxEvent.Magnitude {
			cp := e
			maxEvent = &cp
		}
	}

	n := float64(len(component))
	return ClusterSummary{
		EventCount:        len(component),
		Centroid:          domain.Geo{Lat: sumLat / n, Lon: sumLon / n},
		MaxMagnitudeEvent: maxEvent,
	}
}
