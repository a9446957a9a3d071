// Package kafka publishes stored events and analysis documents to Kafka.
// Publishing is optional; the service runs standalone when no brokers are
// configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/rumixist/erken-deprem-ikazi/internal/analysis"
	"github.com/rumixist/erken-deprem-ikazi/internal/config"
	"github.com/rumixist/erken-deprem-ikazi/internal/domain"
	"github.com/rumixist/erken-deprem-ikazi/internal/observability"
)

// Publisher produces event and analysis messages to their topics.
type Publisher struct {
	events   *kafkago.Writer
	analyses *kafkago.Writer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewPublisher creates Kafka producers for the configured topics.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.KafkaBrokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
		}
	}
	return &Publisher{
		events:   newWriter(cfg.KafkaEventTopic),
		analyses: newWriter(cfg.KafkaAnalysisTopic),
		logger:   logger,
		metrics:  metrics,
	}
}

// PublishEvent ships one newly stored event, keyed by its timestamp so topic
// compaction keeps one message per event.
func (p *Publisher) PublishEvent(ctx context.Context, e domain.EarthquakeEvent) error {
	msg, err := serializeEvent(e)
	if err != nil {
		return err
	}
	return p.write(ctx, p.events, msg)
}

// PublishAnalysis ships one analysis document under a fixed key so consumers
// reading with compaction always see the latest run.
func (p *Publisher) PublishAnalysis(ctx context.Context, result analysis.Result) error {
	msg, err := serializeAnalysis(result)
	if err != nil {
		return err
	}
	return p.write(ctx, p.analyses, msg)
}

func serializeEvent(e domain.EarthquakeEvent) (kafkago.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(e.Timestamp.UTC().Format(time.RFC3339)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	}, nil
}

func serializeAnalysis(result analysis.Result) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize analysis: %w", err)
	}

	return kafkago.Message{
		Key:   []byte("analysis"),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "last_updated", Value: []byte(result.LastUpdated)},
		},
	}, nil
}

func (p *Publisher) write(ctx context.Context, w *kafkago.Writer, msg kafkago.Message) error {
	if err := w.WriteMessages(ctx, msg); err != nil {
		p.metrics.KafkaErrors.WithLabelValues(w.Topic).Inc()
		return err
	}
	p.metrics.KafkaPublished.WithLabelValues(w.Topic).Inc()
	return nil
}

// Close flushes and closes both producers.
func (p *Publisher) Close() error {
	errEvents := p.events.Close()
	errAnalyses := p.analyses.Close()
	if errEvents != nil {
		return errEvents
	}
	return errAnalyses
}
