package ingest

import (
	"context"
	"log/slog"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
)

// LogNotifier raises magnitude alerts as warn-level log entries. Deployments
// that need paging hook a different Notifier in its place.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-based alert notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, e domain.EarthquakeEvent) {
	n.logger.Warn("magnitude alert",
		"timestamp", e.Timestamp,
		"magnitude", *e.Magnitude,
		"lat", e.Geo.Lat,
		"lon", e.Geo.Lon,
		"type", e.Type,
	)
}
