// Package eventbus publishes domain events over NATS JetStream via watermill.
// The bus is optional at runtime: when no NATS URL is configured the app uses
// the noop implementation and every publish is a cheap skip.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"

	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// EventBus publishes JSON-encoded payloads to a topic.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

type natsBus struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewNATSBus creates a JetStream-backed event bus.
func NewNATSBus(natsURL string, logger *slog.Logger) (EventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
	}

	jsConfig := wmnats.JetStreamConfig{
		AutoProvision: true,
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:               natsURL,
			NatsOptions:       options,
			Marshaler:         &wmnats.GobMarshaler{},
			JetStream:         jsConfig,
			SubjectCalculator: wmnats.DefaultSubjectCalculator,
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	return &natsBus{publisher: publisher, logger: logger}, nil
}

func (b *natsBus) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	b.logger.DebugContext(ctx, "Published event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

func (b *natsBus) Close() error {
	return b.publisher.Close()
}

type noopBus struct{}

// NewNoop returns a bus that drops every publish. Used when NATS is not
// configured and in tests.
func NewNoop() EventBus { return noopBus{} }

func (noopBus) Publish(context.Context, string, any) error { return nil }

func (noopBus) Close() error { return nil }
