package entity

import "time"

const (
	ProspectStatusNew              = "new"
	ProspectStatusCallDone         = "call_done"
	ProspectStatusPreTalkScheduled = "pre_talk_scheduled"
	ProspectStatusFollowUp         = "follow_up"
	ProspectStatusClosed           = "closed"
	ProspectStatusNotInterested    = "not_interested"
)

var prospectStatuses = map[string]bool{
	ProspectStatusNew:              true,
	ProspectStatusCallDone:         true,
	ProspectStatusPreTalkScheduled: true,
	ProspectStatusFollowUp:         true,
	ProspectStatusClosed:           true,
	ProspectStatusNotInterested:    true,
}

func IsValidProspectStatus(s string) bool {
	return prospectStatuses[s]
}

type Prospect struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Age              *int      `json:"age,omitempty"`
	City             string    `json:"city,omitempty"`
	Profession       string    `json:"profession,omitempty"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	AssignedMentorID *string   `json:"assigned_mentor_id,omitempty"`
	ReferrerID       *string   `json:"referrer_id,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
