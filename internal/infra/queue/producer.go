package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OutreachEvent is published once per send attempt.
type OutreachEvent struct {
	LeadID   string    `json:"lead_id,omitempty"`
	Email    string    `json:"email"`
	Name     string    `json:"name,omitempty"`
	Category string    `json:"category,omitempty"`
	Subject  string    `json:"subject"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
	SentAt   time.Time `json:"sent_at"`
}

type EventPublisherInterface interface {
	PublishOutreach(ctx context.Context, event OutreachEvent) error
}

// channel is the subset of *amqp.Channel the producer uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishOutreach(ctx context.Context, event OutreachEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode outreach event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.SentAt,
			Type:         "outreach." + event.Status,
		},
	)
	if err != nil {
		return fmt.Errorf("publish outreach event: %w", err)
	}
	return nil
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOutreach(context.Context, OutreachEvent) error { return nil }
