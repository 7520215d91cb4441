package events

import (
	"context"
	"fmt"

	"contour/pkg/kafka"
	kafka_config "contour/pkg/kafka/config"
	"contour/pkg/logger"
)

// KafkaPublisher writes each event type to its own topic.
type KafkaPublisher struct {
	producer *kafka.Producer
	cfg      *kafka_config.Config
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, cfg *kafka_config.Config, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	b := kafka.NewMessage().
		WithTopic(p.cfg.Topic(event.Type)).
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventType(event.Type).
		WithCorrelationID(event.CorrelationID).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source)
	if !event.OccurredAt.IsZero() {
		b = b.WithTimestamp(event.OccurredAt)
	}

	msg, err := b.Build()
	if err != nil {
		return fmt.Errorf("build %s message: %w", event.Type, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct {
	log *logger.Logger
}

func NewNopPublisher(log *logger.Logger) *NopPublisher {
	return &NopPublisher{log: log}
}

func (p *NopPublisher) Publish(ctx context.Context, event Event) error {
	if p.log != nil {
		p.log.Debug("Event dropped, publishing disabled", "event_type", event.Type, "key", event.Key)
	}
	return nil
}

func (p *NopPublisher) Close() error { return nil }
