// Command analyze runs one analysis pass over the local event store and
// prints the resulting document to stdout. Batch variant of the daemon:
// useful for cron publication or inspecting a catalog snapshot.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rumixist/erken-deprem-ikazi/internal/analysis"
	"github.com/rumixist/erken-deprem-ikazi/internal/config"
	"github.com/rumixist/erken-deprem-ikazi/internal/observability"
	"github.com/rumixist/erken-deprem-ikazi/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("analyze failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open event store: %w", err)
	}
	defer db.Close()

	engine := analysis.New(db, analysis.Config{
		ClusterDistanceKm: cfg.ClusterDistanceKm,
		MinBValueEvents:   cfg.BValueMinEvents,
		ZScoreThreshold:   cfg.AnomalyZThreshold,
		BValueBand:        cfg.BValueComparisonBand,
	}, logger, nil)

	result := engine.Run(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	return nil
}
