package entity

import "time"

const (
	PreTalkStatusScheduled = "scheduled"
	PreTalkStatusCompleted = "completed"
	PreTalkStatusCanceled  = "canceled"
)

// PreTalkDuration is the fixed length of every session.
const PreTalkDuration = time.Hour

func IsValidPreTalkStatus(s string) bool {
	return s == PreTalkStatusScheduled || s == PreTalkStatusCompleted || s == PreTalkStatusCanceled
}

type PreTalk struct {
	ID              string    `json:"id"`
	ProspectID      string    `json:"prospect_id"`
	MentorID        string    `json:"mentor_id"`
	AssignedTo      *string   `json:"assigned_to,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	CalendarEventID string    `json:"calendar_event_id,omitempty"`
	MeetLink        string    `json:"meet_link,omitempty"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined display fields, populated by list/detail queries.
	ProspectName string `json:"prospect_name,omitempty"`
	MentorName   string `json:"mentor_name,omitempty"`
	MentorEmail  string `json:"mentor_email,omitempty"`
}

// ScheduleConflict describes an existing session that blocks a new booking
// for the same assignee.
type ScheduleConflict struct {
	PreTalkID    string
	ProspectName string
	ScheduledAt  time.Time
}
