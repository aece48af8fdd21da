// Package tracker delivers product interaction telemetry. Tracking is
// best-effort: a failed or dropped event never blocks or rolls back the user
// action that produced it.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/krishma/storefront/internal/domain"
)

// Sink delivers one event to wherever telemetry goes.
type Sink interface {
	Deliver(ctx context.Context, event domain.TrackedEvent) error
	Close() error
}

// EventPoster is the slice of the backend client the HTTP sink needs.
type EventPoster interface {
	PostEvent(ctx context.Context, event domain.TrackedEvent) error
}

// HTTPSink posts events to the backend's events endpoint. This is the
// default sink.
type HTTPSink struct {
	backend EventPoster
}

func NewHTTPSink(backend EventPoster) *HTTPSink {
	return &HTTPSink{backend: backend}
}

func (s *HTTPSink) Deliver(ctx context.Context, event domain.TrackedEvent) error {
	return s.backend.PostEvent(ctx, event)
}

func (s *HTTPSink) Close() error { return nil }

// KafkaSink publishes events to a topic for deployments where an analytics
// pipeline consumes telemetry from a broker instead of the backend API.
type KafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaSink(topic string, brokers ...string) *KafkaSink {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Deliver(ctx context.Context, event domain.TrackedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID), // per-user ordering is enough
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return s.writer.WriteMessages(ctx, msg)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
