package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"contour/pkg/kafka"
	kafka_config "contour/pkg/kafka/config"
	"contour/pkg/logger"
	"contour/pkg/model"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu   sync.Mutex
	msgs []segkafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...segkafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func headerValue(m segkafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestEnrichPhone(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		region      string
		wantE164    string
		wantCountry string
	}{
		{"us national", "(650) 253-0000", "US", "+16502530000", "US"},
		{"israeli national", "054-123-4567", "IL", "+972541234567", "IL"},
		{"garbage", "12345", "US", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e164, country := EnrichPhone(tt.phone, tt.region)
			assert.Equal(t, tt.wantE164, e164)
			assert.Equal(t, tt.wantCountry, country)
		})
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &recordingWriter{}
	producer := kafka.NewProducerWithWriters(w, nil, "")
	cfg := &kafka_config.Config{TopicPrefix: "contour."}
	pub := NewKafkaPublisher(producer, cfg, logger.Discard())

	at := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	payload := model.BookingPayload{
		Name:        "Dana Levi",
		Email:       "dana@example.com",
		Phone:       "(650) 253-0000",
		ServiceName: "Body Contouring",
		Date:        "2025-06-11",
		Time:        "10:00",
	}
	err := pub.Publish(context.Background(), NewBookingSubmitted(payload, "draft-1", "apt-9", "key-1", "US", "req-1", at))
	require.NoError(t, err)

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "contour.booking.submitted", msg.Topic)
	assert.Equal(t, "key-1", string(msg.Key))
	assert.Equal(t, TypeBookingSubmitted, headerValue(msg, kafka.HeaderEventType))
	assert.Equal(t, "req-1", headerValue(msg, kafka.HeaderCorrelationID))
	assert.Equal(t, SchemaVersion, headerValue(msg, kafka.HeaderSchemaVersion))

	var body BookingSubmitted
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "apt-9", body.AppointmentID)
	assert.Equal(t, "+16502530000", body.PhoneE164)
	assert.Equal(t, "(650) 253-0000", body.Phone)
	assert.Nil(t, body.Message)
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker down")}
	pub := NewKafkaPublisher(kafka.NewProducerWithWriters(w, nil, ""), &kafka_config.Config{TopicPrefix: "contour."}, logger.Discard())

	err := pub.Publish(context.Background(), Event{Type: TypeNewsletterSubscribed, Key: "a@b.co", Payload: NewsletterSubscribed{Email: "a@b.co"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TypeNewsletterSubscribed)
}

func TestNopPublisher(t *testing.T) {
	pub := NewNopPublisher(logger.Discard())
	assert.NoError(t, pub.Publish(context.Background(), Event{Type: TypeContactSubmitted}))
	assert.NoError(t, pub.Close())
}
