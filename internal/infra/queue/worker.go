package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConversionTracker define o contrato do destino dos eventos (Facebook CAPI).
type ConversionTracker interface {
	SendConversion(ctx context.Context, payload ConversionPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Tracker ConversionTracker
}

func NewWorker(ch *amqp.Channel, tracker ConversionTracker) *Worker {
	return &Worker{
		Channel: ch,
		Tracker: tracker,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ConversionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada. Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("🎯 [WORKER] Evento %s da transação %s indo pro CAPI", payload.EventName, payload.TransactionID)

			if err := w.Tracker.SendConversion(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro no CAPI: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
