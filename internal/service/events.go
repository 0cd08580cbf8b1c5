package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/videominer/videominer-go/internal/config"
	"github.com/videominer/videominer-go/pkg/logger"
)

// EntityEvent describes one catalogue mutation for downstream consumers.
type EntityEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher emits entity lifecycle events. Publishing is best-effort:
// the resource services log failures and never surface them to callers.
type EventPublisher interface {
	PublishEntityEvent(ctx context.Context, event *EntityEvent) error
	Close() error
}

// MessagePublisher publishes entity events to a RabbitMQ topic exchange.
type MessagePublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.EventsConfig
	mu      sync.RWMutex
}

// NewMessagePublisher connects to RabbitMQ and declares the exchange.
func NewMessagePublisher(cfg *config.EventsConfig) (*MessagePublisher, error) {
	mp := &MessagePublisher{config: cfg}

	if err := mp.connect(); err != nil {
		return nil, err
	}

	return mp, nil
}

func (mp *MessagePublisher) connect() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	connURL := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		mp.config.User, mp.config.Password, mp.config.Host, mp.config.Port)

	conn, err := amqp.Dial(connURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		mp.config.Exchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	mp.conn = conn
	mp.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", mp.config.Exchange),
		zap.String("routingKey", mp.config.RoutingKey),
	)

	return nil
}

// PublishEntityEvent sends one event to the exchange. There is no retry;
// the caller decides whether a failure matters.
func (mp *MessagePublisher) PublishEntityEvent(ctx context.Context, event *EntityEvent) error {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if mp.channel == nil {
		return fmt.Errorf("channel is not initialized")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = mp.channel.PublishWithContext(
		ctx,
		mp.config.Exchange,
		mp.config.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// IsHealthy reports whether the broker connection is open.
func (mp *MessagePublisher) IsHealthy() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return mp.conn != nil && !mp.conn.IsClosed()
}

// Close closes the channel and connection.
func (mp *MessagePublisher) Close() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	var errs []error
	if mp.channel != nil {
		if err := mp.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if mp.conn != nil {
		if err := mp.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}
	return nil
}

// publishEvent is the nil-safe helper the resource services use after a
// successful create or delete.
func publishEvent(ctx context.Context, publisher EventPublisher, entity, action, key string) {
	if publisher == nil {
		return
	}

	event := &EntityEvent{
		Entity:     entity,
		Action:     action,
		Key:        key,
		OccurredAt: time.Now(),
	}
	if err := publisher.PublishEntityEvent(ctx, event); err != nil {
		logger.Log.Warn("entity event not published",
			zap.String("entity", entity),
			zap.String("action", action),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
