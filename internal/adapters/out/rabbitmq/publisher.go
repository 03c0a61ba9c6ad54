package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"storefront/internal/core/ports"

	"github.com/streadway/amqp"
)

// StatusChangedRoutingKey routes order status events.
const StatusChangedRoutingKey = "order.status_changed"

// channel is the part of *amqp.Channel the publisher needs.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// OrderEventPublisher implements ports.OrderEventPublisher over AMQP.
type OrderEventPublisher struct {
	mu       sync.Mutex
	channel  channel
	exchange string
}

func NewOrderEventPublisher(ch channel, exchange string) *OrderEventPublisher {
	return &OrderEventPublisher{channel: ch, exchange: exchange}
}

func (p *OrderEventPublisher) PublishStatusChanged(_ context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.Publish(
		p.exchange,
		StatusChangedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.OrderID + ":" + event.To,
			Type:         StatusChangedRoutingKey,
			Timestamp:    event.UpdatedAt,
			Body:         body,
		},
	)
}

// LogPublisher stands in when no broker is configured: events are only logged.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "OrderEvents")}
}

func (p *LogPublisher) PublishStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	p.logger.DebugContext(ctx, "order status changed",
		"orderId", event.OrderID,
		"from", event.From,
		"to", event.To,
	)
	return nil
}
