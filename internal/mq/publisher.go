package mq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher handles reading event publishing to RabbitMQ. A Publisher with
// no channel swallows events, so callers never branch on whether the broker
// is configured.
type Publisher struct {
	conn     *Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher creates a new RabbitMQ publisher. Pass a nil connection to
// disable publishing.
func NewPublisher(conn *Connection, exchange string, logger *zap.Logger) (*Publisher, error) {
	if conn == nil {
		return &Publisher{logger: logger}, nil
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	// Declare exchange
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// ReadingEvent represents the event published when a reading is created or
// confirmed.
type ReadingEvent struct {
	MeasureUUID  string `json:"measure_uuid"`
	CustomerCode string `json:"customer_code"`
	MeasureType  string `json:"measure_type"`
	MeasureValue int64  `json:"measure_value"`
	Confirmed    bool   `json:"confirmed"`
	OccurredAt   string `json:"occurred_at"`
}

// PublishReadingEvent publishes a reading lifecycle event
func (p *Publisher) PublishReadingEvent(ctx context.Context, event ReadingEvent, routingKey string) error {
	if p.channel == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published reading event",
		zap.String("routing_key", routingKey),
		zap.String("measure_uuid", event.MeasureUUID),
		zap.String("customer_code", event.CustomerCode),
	)

	return nil
}

// Close closes the publisher channel
func (p *Publisher) Close() error {
	if p.channel != nil {
		return p.channel.Close()
	}
	return nil
}
