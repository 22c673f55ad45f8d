package mq

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/sparkify/etl/config"
	"github.com/sparkify/etl/types"
)

// Backend defines the broker-agnostic operations used by the notifier.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// MQ publishes load events to a channel. A nil backend turns every call
// into a no-op.
type MQ struct {
	backend Backend
	channel string
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend, channel string) *MQ {
	return &MQ{backend: backend, channel: channel}
}

// Connect builds the MQ selected by cfg.MQ.Backend.
func Connect(ctx context.Context, cfg config.Config) (*MQ, error) {
	switch cfg.MQ.Backend {
	case "", "none":
		return New(nil, cfg.MQ.Channel), nil
	case "rabbitmq":
		backend, err := NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return New(backend, cfg.MQ.Channel), nil
	case "pubsub":
		backend, err := NewPubSubClient(ctx, cfg.MQ.PubSub)
		if err != nil {
			return nil, err
		}
		return New(backend, cfg.MQ.Channel), nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
	}
}

// Enabled reports whether events are actually sent anywhere.
func (m *MQ) Enabled() bool {
	return m.backend != nil
}

// PublishLoad sends a committed category summary and returns the message id.
func (m *MQ) PublishLoad(ctx context.Context, event types.LoadEvent) (string, error) {
	if m.backend == nil {
		return "", nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("encode load event: %w", err)
	}
	return m.backend.Publish(ctx, m.channel, data, map[string]string{
		"category": string(event.Category),
	})
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	if m.backend == nil {
		return nil
	}
	return m.backend.Close()
}
