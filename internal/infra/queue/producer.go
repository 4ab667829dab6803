package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConversionPayload é o evento que o webhook publica quando uma transação
// vira paid. O worker entrega pro Facebook CAPI.
type ConversionPayload struct {
	EventName     string  `json:"event_name"`
	TransactionID string  `json:"transaction_id"`
	Email         string  `json:"email"`
	FBP           string  `json:"fbp,omitempty"`
	FBC           string  `json:"fbc,omitempty"`
	Currency      string  `json:"currency"`
	Value         float64 `json:"value"`
}

type ConversionProducerInterface interface {
	PublishConversion(ctx context.Context, payload ConversionPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishConversion(ctx context.Context, payload ConversionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.funnel
		RoutingKey,   // k.conversion
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
