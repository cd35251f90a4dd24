// Package mq wires the service to RabbitMQ: station tickets ride a topic
// exchange keyed by station, order status changes fan out to subscribers.
package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TicketsExchange       = "tickets_topic"
	NotificationsExchange = "notifications_fanout"
	NotificationsQueue    = "notifications.q"
	DeadLetterExchange    = "dlx"
	DeadLetterQueue       = "dlq"
)

// TicketRoutingKey is the key station tickets are published under.
func TicketRoutingKey(station string) string { return "ticket." + station }

// StationQueue names the durable queue a station worker consumes.
func StationQueue(station string) string { return fmt.Sprintf("station.%s.q", station) }

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// DeclareAll sets up the shared topology. Declarations are idempotent, so
// every process runs this on startup.
func (c *Client) DeclareAll() error {
	if c == nil || c.ch == nil {
		return fmt.Errorf("nil channel")
	}
	if err := c.ch.ExchangeDeclare(TicketsExchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	if err := c.ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return err
	}
	if err := c.ch.ExchangeDeclare(DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := c.ch.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := c.ch.QueueBind(NotificationsQueue, "", NotificationsExchange, false, nil); err != nil {
		return err
	}
	return nil
}

// DeclareStationQueue declares and binds the queue for one station.
// Unprocessable tickets dead-letter out instead of poisoning the queue.
func (c *Client) DeclareStationQueue(station string) error {
	name := StationQueue(station)
	_, err := c.ch.QueueDeclare(name, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    DeadLetterExchange,
		"x-dead-letter-routing-key": DeadLetterQueue,
	})
	if err != nil {
		return err
	}
	return c.ch.QueueBind(name, TicketRoutingKey(station), TicketsExchange, false, nil)
}

func (c *Client) Publish(ctx context.Context, exchange, key string, priority uint8, messageID, correlationID string, body []byte) error {
	return c.ch.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     messageID,
		CorrelationId: correlationID,
		Priority:      priority,
		Timestamp:     time.Now().UTC(),
		Body:          body,
	})
}

func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}
