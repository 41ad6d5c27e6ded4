// Package queue_publisher publishes domain events to RabbitMQ. Errors
// are logged and returned so callers can ignore failures without
// interrupting the request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	q "github.com/haneul-dev/virtual-gallery/internal/queue"
)

// Publisher emits gallery domain events. It dials per publish; the
// event volume (one per gallery deletion) does not warrant a pooled
// connection.
type Publisher struct {
	url string
}

func New() *Publisher {
	return &Publisher{url: q.BrokerURL()}
}

// PublishGalleryDeleted publishes a GalleryDeletedEvent to the durable
// gallery.deleted queue. Messages are marked persistent.
func (p *Publisher) PublishGalleryDeleted(ctx context.Context, event q.GalleryDeletedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare("gallery.deleted", true, false, false, false, nil); err != nil {
		log.Error().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", "gallery.deleted", false, false, pub); err != nil {
		log.Error().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
