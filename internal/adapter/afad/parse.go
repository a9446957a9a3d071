package afad

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// catalogTableClass identifies the events table on the AFAD page.
const catalogTableClass = "content-table"

// timestampLayout is the catalog's date format, e.g. "2025-04-23 21:47:10".
// Catalog time is stored as-is in UTC; windowing only needs the timestamps
// to be mutually consistent.
const timestampLayout = "2006-01-02 15:04:05"

// minColumns is the smallest usable row: date, lat, lon, depth, type, magnitude.
// The page appends a location column which is ignored.
const minColumns = 6

var errTableNotFound = errors.New("catalog table not found")

// parseCatalogTable extracts the cell texts of every data row in the events
// table, skipping the header row.
func parseCatalogTable(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	table := findTable(doc)
	if table == nil {
		return nil, errTableNotFound
	}

	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if cells := rowCells(n); cells != nil {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)

	return rows, nil
}

// findTable locates the first <table> carrying the catalog class.
func findTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" && hasClass(n, catalogTableClass) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTable(c); t != nil {
			return t
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// rowCells collects the trimmed text of each <td> in a row. Header rows
// (th-only) return nil.
func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// parseRow converts one catalog row into an event. Depth and magnitude use
// "-" as the catalog's unmeasured sentinel and parse to nil.
func parseRow(cols []string) (domain.EarthquakeEvent, error) {
	if len(cols) < minColumns {
		return domain.EarthquakeEvent{}, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(cols))
	}

	ts, err := time.ParseInLocation(timestampLayout, cols[0], time.UTC)
	if err != nil {
		return domain.EarthquakeEvent{}, fmt.Errorf("parse timestamp %q: %w", cols[0], err)
	}

	lat, err := strconv.ParseFloat(cols[1], 64)
	if err != nil {
		return domain.EarthquakeEvent{}, fmt.Errorf("parse latitude %q: %w", cols[1], err)
	}
	lon, err := strconv.ParseFloat(cols[2], 64)
	if err != nil {
		return domain.EarthquakeEvent{}, fmt.Errorf("parse longitude %q: %w", cols[2], err)
	}

	depth, err := parseOptionalFloat(cols[3])
	if err != nil {
		return domain.EarthquakeEvent{}, fmt.Errorf("parse depth %q: %w", cols[3], err)
	}
	magnitude, err := parseOptionalFloat(cols[5])
	if err != nil {
		return domain.EarthquakeEvent{}, fmt.Errorf("parse magnitude %q: %w", cols[5], err)
	}

	return domain.EarthquakeEvent{
		Timestamp: ts,
		Geo:       domain.Geo{Lat: lat, Lon: lon},
		Depth:     depth,
		Type:      cols[4],
		Magnitude: magnitude,
	}, nil
}

// parseOptionalFloat treats "" and "-" as absent.
func parseOptionalFloat(s string) (*float64, error) {
	if s == "" || s == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
