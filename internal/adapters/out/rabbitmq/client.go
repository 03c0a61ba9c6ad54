// Package rabbitmq publishes order events to a RabbitMQ topic exchange.
package rabbitmq

import (
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"
)

// Client owns one connection and one channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects to url and opens a channel.
func Dial(url string, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	logger.Info("RabbitMQ connected")

	return &Client{conn: conn, channel: channel}, nil
}

func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

// DeclareExchange declares a durable topic exchange.
func (c *Client) DeclareExchange(name string) error {
	return c.channel.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

// Close closes the channel and connection for graceful shutdown.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
