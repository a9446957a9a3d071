// Package ingest runs the fetch-filter-store loop that keeps the local
// catalog current.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
	"github.com/rumixist/erken-deprem-ikazi/internal/observability"
)

// Fetcher retrieves the current in-region events from the upstream catalog.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.EarthquakeEvent, error)
}

// EventStore appends events, deduplicating on timestamp.
type EventStore interface {
	InsertEvent(ctx context.Context, e domain.EarthquakeEvent) (bool, error)
}

// Notifier is told about newly stored events at or above the alert magnitude.
type Notifier interface {
	Notify(ctx context.Context, e domain.EarthquakeEvent)
}

// EventPublisher ships newly stored events downstream. Publish failures are
// logged but never fail the cycle; the store remains the source of truth.
type EventPublisher interface {
	PublishEvent(ctx context.Context, e domain.EarthquakeEvent) error
}

// Loop polls the catalog on an interval and appends new events to the store.
type Loop struct {
	fetcher   Fetcher
	store     EventStore
	notifier  Notifier
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics

	interval       time.Duration
	alertMagnitude float64
	ready          atomic.Bool
	onCycle        func(ctx context.Context)
}

// New creates an ingestion loop. notifier and publisher may be nil to disable
// alerting and downstream publishing.
func New(fetcher Fetcher, store EventStore, notifier Notifier, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration, alertMagnitude float64) *Loop {
	return &Loop{
		fetcher:        fetcher,
		store:          store,
		notifier:       notifier,
		publisher:      publisher,
		logger:         logger,
		metrics:        metrics,
		interval:       interval,
		alertMagnitude: alertMagnitude,
	}
}

// OnCycleComplete registers a hook invoked by Run after each successful
// fetch cycle, typically to trigger an analysis pass. Must be set before Run.
func (l *Loop) OnCycleComplete(fn func(ctx context.Context)) {
	l.onCycle = fn
}

// CheckReadiness returns nil once at least one fetch cycle has completed.
func (l *Loop) CheckReadiness(_ context.Context) error {
	if !l.ready.Load() {
		return errors.New("ingest has not completed a fetch cycle yet")
	}
	return nil
}

// RunOnce executes one fetch-filter-store cycle and returns the number of
// newly stored events.
func (l *Loop) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()

	events, err := l.fetcher.Fetch(ctx)
	if err != nil {
		l.metrics.FetchErrors.Inc()
		return 0, err
	}
	l.metrics.EventsFetched.Add(float64(len(events)))

	added := 0
	for _, e := range events {
		stored, err := l.store.InsertEvent(ctx, e)
		if err != nil {
			return added, err
		}
		if !stored {
			continue
		}
		added++
		l.checkAlert(ctx, e)

		if l.publisher != nil {
			if err := l.publisher.PublishEvent(ctx, e); err != nil {
				l.logger.Warn("event publish failed", "timestamp", e.Timestamp, "error", err)
			}
		}
	}

	l.metrics.EventsStored.Add(float64(added))
	l.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	l.ready.Store(true)

	l.logger.Info("fetch cycle complete", "fetched", len(events), "stored", added)
	return added, nil
}

// Run polls until the context is cancelled. The first cycle runs immediately;
// failures retry with exponential backoff before falling back to the regular
// interval.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("ingest loop started", "interval", l.interval)
	l.metrics.IngestRunning.Set(1)
	defer l.metrics.IngestRunning.Set(0)

	backoff := 5 * time.Second
	maxBackoff := 2 * time.Minute

	for {
		wait := l.interval
		if _, err := l.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				l.logger.Info("ingest loop stopping", "reason", ctx.Err())
				return nil
			}
			l.logger.Error("fetch cycle failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = 5 * time.Second
			if l.onCycle != nil {
				l.onCycle(ctx)
			}
		}

		if !sleepWithContext(ctx, wait) {
			l.logger.Info("ingest loop stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// checkAlert raises an alert for a newly stored event at or above the alert
// magnitude.
func (l *Loop) checkAlert(ctx context.Context, e domain.EarthquakeEvent) {
	if !e.HasMagnitude() || *e.Magnitude < l.alertMagnitude {
		return
	}
	l.metrics.AlertsRaised.Inc()
	if l.notifier != nil {
		l.notifier.Notify(ctx, e)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
