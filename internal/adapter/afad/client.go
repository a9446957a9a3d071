// Package afad fetches and parses the AFAD last-earthquakes HTML page.
package afad

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// Client fetches recent earthquake events from the AFAD catalog page.
type Client struct {
	url        string
	region     domain.Region
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an AFAD catalog client restricted to the given region.
func NewClient(url string, region domain.Region, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		region: region,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the catalog page and returns the in-region events, in page
// order. Rows that fail to parse are skipped with a warning; an unreachable
// or malformed page is an error.
func (c *Client) Fetch(ctx context.Context) ([]domain.EarthquakeEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	rows, err := parseCatalogTable(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse catalog page: %w", err)
	}

	events := make([]domain.EarthquakeEvent, 0, len(rows))
	for i, row := range rows {
		event, err := parseRow(row)
		if err != nil {
			c.logger.Warn("skipping malformed catalog row", "row", i+1, "error", err)
			continue
		}
		if !c.region.Contains(event.Geo.Lat, event.Geo.Lon) {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}
