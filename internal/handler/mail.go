package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// publishMail serializes a mail message onto the queue. The surrounding
// application fires mail after a mutation committed; the engine itself
// never blocks on delivery.
func (h *Handler) publishMail(mailType string, to string, data any) error {
	message := domain.MailMessage{
		ID:   uuid.NewString(),
		Type: mailType,
		To:   to,
		Data: data,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
