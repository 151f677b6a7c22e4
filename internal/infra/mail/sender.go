package mail

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/nrampal/prospecta/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendAssignment tells a team member a pre-talk landed on their calendar.
func (s *EmailSender) SendAssignment(payload queue.AssignmentPayload) error {
	when := payload.ScheduledAt
	if t, err := time.Parse(time.RFC3339, payload.ScheduledAt); err == nil {
		when = t.Local().Format("Mon, Jan 2 2006 at 3:04 PM")
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n%s assigned you a pre-talk with %s (mentor: %s).\n\nWhen: %s\nMeet link: %s\n",
		payload.AssigneeName, payload.AssignedByName, payload.ProspectName,
		payload.MentorName, when, payload.MeetLink,
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", payload.AssigneeEmail)
	m.SetHeader("Subject", fmt.Sprintf("Pre-talk assigned: %s", payload.ProspectName))
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send assignment email: %w", err)
	}
	return nil
}
