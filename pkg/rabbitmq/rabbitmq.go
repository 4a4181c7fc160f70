package rabbitmq

import (
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// Queue and exchange names for the two event streams the store emits:
// order checkouts and audit trail notifications.
const (
	OrderExchange = "order"
	AuditExchange = "audit"
	orderQueue    = "order_queue"
	auditQueue    = "audit_queue"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ and declares the order and audit exchanges
// with their durable queues.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for exchange, queue := range map[string]string{
		OrderExchange: orderQueue,
		AuditExchange: auditQueue,
	} {
		if err := ch.ExchangeDeclare(
			exchange, // name
			"topic",  // type
			true,     // durable
			false,    // auto-deleted
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
		if _, err := ch.QueueDeclare(
			queue, // name
			true,  // durable (persists messages across broker restarts)
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
		if err := ch.QueueBind(queue, exchange+".#", exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue %s: %w", queue, err)
		}
	}

	log.Println("RabbitMQ client connected; order and audit queues declared.")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a JSON message to an exchange with the given routing key.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	err := c.channel.Publish(
		exchange,
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
		return fmt.Errorf("failed to publish message to %s/%s: %w", exchange, routingKey, err)
	}
	return nil
}

// ConsumeOrderEvents starts consuming order events, invoking handler for each
// delivery. Messages are acked on a nil handler result and nacked (requeued)
// otherwise.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msgs, err := c.channel.Consume(
		orderQueue, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to register order consumer: %w", err)
	}

	for msg := range msgs {
		if err := handler(msg); err != nil {
			log.Printf("Order message handling failed (tag %d): %v", msg.DeliveryTag, err)
			if nackErr := msg.Nack(false, true); nackErr != nil {
				log.Printf("Failed to nack message (tag %d): %v", msg.DeliveryTag, nackErr)
			}
			continue
		}
		if ackErr := msg.Ack(false); ackErr != nil {
			log.Printf("Failed to ack message (tag %d): %v", msg.DeliveryTag, ackErr)
		}
	}
	return nil
}
