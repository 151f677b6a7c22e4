package entity

import (
	"encoding/json"
	"time"
)

// Well-known action tags. The column itself is free-form.
const (
	ActionProspectCreated  = "prospect_created"
	ActionProspectUpdated  = "prospect_updated"
	ActionProspectDeleted  = "prospect_deleted"
	ActionPreTalkScheduled = "pre_talk_scheduled"
	ActionPreTalkAssigned  = "pre_talk_assigned"
	ActionPreTalkUpdated   = "pre_talk_updated"
	ActionPreTalkCompleted = "pre_talk_completed"
)

// ActivityLog is append-only: rows are never updated or deleted by the
// application.
type ActivityLog struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ProspectID *string         `json:"prospect_id,omitempty"`
	Action     string          `json:"action"`
	Meta       json.RawMessage `json:"meta,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`

	UserName string `json:"user_name,omitempty"`
}
