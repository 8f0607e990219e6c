package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// Topic carrying account lifecycle events.
const UserEventsTopic = "user_events"

// Event types published by the auth core.
const (
	TypeAccountRegistered     = "account_registered"
	TypeAccountLoggedIn       = "account_logged_in"
	TypeRoleChanged           = "role_changed"
	TypePasswordResetIssued   = "password_reset_issued"
	TypePasswordResetRedeemed = "password_reset_redeemed"
)

// Producer publishes auth events to kafka. A nil Producer discards events, so
// callers never have to guard publishes in tests or when kafka is not
// configured.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(address []string) *Producer {
	if len(address) == 0 {
		return nil
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(address...),
			Topic:        UserEventsTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) PublishEvent(ctx context.Context, key string, event map[string]any) error {
	if p == nil || p.writer == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
