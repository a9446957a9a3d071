package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rumixist/erken-deprem-ikazi/internal/adapter/afad"
	httpadapter "github.com/rumixist/erken-deprem-ikazi/internal/adapter/http"
	kafkaadapter "github.com/rumixist/erken-deprem-ikazi/internal/adapter/kafka"
	"github.com/rumixist/erken-deprem-ikazi/internal/analysis"
	"github.com/rumixist/erken-deprem-ikazi/internal/config"
	"github.com/rumixist/erken-deprem-ikazi/internal/ingest"
	"github.com/rumixist/erken-deprem-ikazi/internal/observability"
	"github.com/rumixist/erken-deprem-ikazi/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open event store", "error", err)
		os.Exit(1)
	}

	// Kafka publishing is feature-flagged on configured brokers.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger, metrics)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers,
			"event_topic", cfg.KafkaEventTopic, "analysis_topic", cfg.KafkaAnalysisTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	fetcher := afad.NewClient(cfg.AFADSourceURL, cfg.Region, cfg.FetchTimeout, logger)
	notifier := ingest.NewLogNotifier(logger)

	var eventPublisher ingest.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	loop := ingest.New(fetcher, db, notifier, eventPublisher, logger, metrics, cfg.FetchInterval, cfg.AlertMagnitude)

	engine := analysis.New(db, analysis.Config{
		ClusterDistanceKm: cfg.ClusterDistanceKm,
		MinBValueEvents:   cfg.BValueMinEvents,
		ZScoreThreshold:   cfg.AnomalyZThreshold,
		BValueBand:        cfg.BValueComparisonBand,
	}, logger, metrics)

	var srv *httpadapter.Server

	analyzeAndPublish := func(ctx context.Context) {
		result := engine.Run(ctx)
		srv.SetAnalysis(result)
		if publisher != nil {
			if err := publisher.PublishAnalysis(ctx, result); err != nil {
				logger.Warn("analysis publish failed", "error", err)
			}
		}
	}

	refresh := httpadapter.RefreshFunc(func(ctx context.Context) error {
		if _, err := loop.RunOnce(ctx); err != nil {
			return err
		}
		analyzeAndPublish(ctx)
		return nil
	})

	srv = httpadapter.NewServer(cfg.HTTPAddr, loop, refresh, logger)
	loop.OnCycleComplete(analyzeAndPublish)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := loop.Run(ctx); err != nil {
			logger.Error("ingest loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if err := db.Close(); err != nil {
		logger.Error("event store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
