package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errMalformedMessage = errors.New("malformed message")

// WelcomeMailer manda o email de boas-vindas depois que o pagamento vinculou o lead.
type WelcomeMailer interface {
	SendWelcome(to, name, plan string) error
}

type consumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel consumeChannel
	Mailer  WelcomeMailer
}

func NewWorker(ch consumeChannel, mailer WelcomeMailer) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
	}
}

// Start consome até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Printf("🛑 [WORKER] encerrando consumo de '%s'", queueName)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	log.Printf("📥 [WORKER] Mensagem recebida correlation_id=%s", d.CorrelationId)

	if err := w.process(ctx, d.Body); err != nil {
		log.Printf("❌ [WORKER] %s", err)
		// Sem requeue: a mensagem vai para a DLQ
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}

func (w *Worker) process(ctx context.Context, body []byte) error {
	var payload LeadLinkedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("%w: %v", errMalformedMessage, err)
	}
	if payload.Email == "" {
		return fmt.Errorf("%w: email vazio (lead %d)", errMalformedMessage, payload.LeadID)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	log.Printf("⚙️ [WORKER] boas-vindas para lead %d (%s)", payload.LeadID, payload.Origin)

	if err := w.Mailer.SendWelcome(payload.Email, payload.FirstName, payload.Plan); err != nil {
		return fmt.Errorf("falha no email de boas-vindas do lead %d: %w", payload.LeadID, err)
	}

	log.Printf("✅ [WORKER] Sucesso! Lead %d notificado.", payload.LeadID)
	return nil
}
