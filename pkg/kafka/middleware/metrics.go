package kafka_middleware

import (
	"context"

	"contour/pkg/kafka"
	"contour/pkg/metrics"
)

// MetricsProducerMiddleware counts publish outcomes per topic
func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		err := next(ctx, msg)
		m.EventsPublished.WithLabelValues(msg.Topic, metrics.Status(err)).Inc()
		return err
	}
}
