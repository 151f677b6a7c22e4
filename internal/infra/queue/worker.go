package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AssignmentNotifier delivers the notification (email today).
type AssignmentNotifier interface {
	SendAssignment(payload AssignmentPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier AssignmentNotifier
}

func NewWorker(ch *amqp.Channel, notifier AssignmentNotifier) *Worker {
	return &Worker{Channel: ch, Notifier: notifier}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	log.Printf("📬 notification worker waiting on queue '%s'", queueName)

	for d := range msgs {
		var payload AssignmentPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("❌ [WORKER] invalid assignment payload: %s", err)
			// Malformed message: reject without requeue so the queue keeps moving.
			d.Nack(false, false)
			continue
		}

		if err := w.Notifier.SendAssignment(payload); err != nil {
			log.Printf("❌ [WORKER] notification for %s failed: %s", payload.AssigneeEmail, err)
			d.Nack(false, false)
			continue
		}

		log.Printf("✅ [WORKER] assignment notification sent to %s", payload.AssigneeEmail)
		d.Ack(false)
	}
}
