package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AssignmentPayload announces that a pre-talk was booked onto somebody's
// calendar. Consumed by the notification worker.
type AssignmentPayload struct {
	PreTalkID      string `json:"pre_talk_id"`
	ProspectName   string `json:"prospect_name"`
	AssigneeEmail  string `json:"assignee_email"`
	AssigneeName   string `json:"assignee_name"`
	MentorName     string `json:"mentor_name"`
	AssignedByName string `json:"assigned_by_name"`
	ScheduledAt    string `json:"scheduled_at"`
	MeetLink       string `json:"meet_link"`
}

type Producer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) PublishAssignment(ctx context.Context, payload AssignmentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish assignment: %w", err)
	}
	return nil
}
