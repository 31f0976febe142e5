package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const OriginPaymentWebhook = "WEBHOOK_STRIPE"

// LeadLinkedPayload vai para a fila quando o lead é vinculado ao cliente do pagamento.
type LeadLinkedPayload struct {
	LeadID        int64  `json:"lead_id"`
	CorrelationID string `json:"correlation_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Plan      string `json:"plan,omitempty"`

	PaymentCustomerID  string `json:"payment_customer_id"`
	SubscriptionStatus string `json:"subscription_status"`
	Origin             string `json:"origin"`
}

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch publishChannel
}

func NewProducer(ch publishChannel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadLinked(ctx context.Context, payload LeadLinkedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: payload.CorrelationID,
			Body:          body,
			DeliveryMode:  amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
