// Package queue_publisher publishes domain events to RabbitMQ. Errors are
// logged and returned so callers can ignore broker failures without
// interrupting the request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/mercass/storefront/internal/queue"
)

// PublishSubscriptionActivated publishes to the subscription.activated
// queue. Messages are persistent so they survive broker restarts.
func PublishSubscriptionActivated(ctx context.Context, event q.SubscriptionActivatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("rabbitmq: marshal event failed", "error", err)
		return err
	}
	return publish(ctx, q.SubscriptionQueue, body)
}

// PublishNewsletterSubscribed publishes to the newsletter.subscribed queue.
func PublishNewsletterSubscribed(ctx context.Context, event q.NewsletterSubscribedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("rabbitmq: marshal event failed", "error", err)
		return err
	}
	return publish(ctx, q.NewsletterQueue, body)
}

func publish(ctx context.Context, queueName string, body []byte) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		slog.Error("rabbitmq: dial failed", "queue", queueName, "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Error("rabbitmq: channel open failed", "queue", queueName, "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		slog.Error("rabbitmq: queue declare failed", "queue", queueName, "error", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		slog.Error("rabbitmq: publish failed", "queue", queueName, "error", err)
		return err
	}
	return nil
}
