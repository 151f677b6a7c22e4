package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/infra/queue"
)

// Conflict window around a requested start time. Asymmetric on purpose: a new
// session must not start during, or within 30 minutes of, an existing
// one-hour session of the same assignee.
const (
	ConflictWindowBefore = 30 * time.Minute
	ConflictWindowAfter  = 90 * time.Minute
)

type SchedulePreTalkInput struct {
	ProspectID  string `json:"prospect_id"`
	MentorID    string `json:"mentor_id"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	ScheduledAt string `json:"scheduled_at"`
	Notes       string `json:"notes,omitempty"`
}

type SchedulePreTalkUseCase struct {
	Users     UserRepositoryInterface
	Prospects ProspectRepositoryInterface
	PreTalks  PreTalkRepositoryInterface
	Logs      ActivityLogRepositoryInterface
	Calendar  CalendarGateway
	Notifier  NotificationProducerInterface // optional
}

func NewSchedulePreTalkUseCase(
	users UserRepositoryInterface,
	prospects ProspectRepositoryInterface,
	preTalks PreTalkRepositoryInterface,
	logs ActivityLogRepositoryInterface,
	calendar CalendarGateway,
	notifier NotificationProducerInterface,
) *SchedulePreTalkUseCase {
	return &SchedulePreTalkUseCase{
		Users:     users,
		Prospects: prospects,
		PreTalks:  preTalks,
		Logs:      logs,
		Calendar:  calendar,
		Notifier:  notifier,
	}
}

func (uc *SchedulePreTalkUseCase) Execute(ctx context.Context, actorID string, input SchedulePreTalkInput) (*entity.PreTalk, error) {
	if input.ProspectID == "" || input.MentorID == "" || input.ScheduledAt == "" {
		return nil, NewValidationError("prospect_id, mentor_id and scheduled_at are required")
	}

	prospect, err := uc.Prospects.FindByID(ctx, input.ProspectID)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			return nil, NewNotFoundError("Prospect not found")
		}
		return nil, err
	}

	mentor, err := uc.Users.FindMentorByID(ctx, input.MentorID)
	if err != nil {
		if errors.Is(err, entity.ErrMentorNotFound) {
			return nil, NewNotFoundError("Mentor not found")
		}
		return nil, err
	}

	var assignee *entity.User
	if input.AssignedTo != "" {
		assignee, err = uc.Users.FindByID(ctx, input.AssignedTo)
		if err != nil {
			if errors.Is(err, entity.ErrUserNotFound) {
				return nil, NewNotFoundError("Assigned user not found")
			}
			return nil, err
		}
	}

	actor, err := uc.Users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	scheduledAt, err := ParseScheduledAt(input.ScheduledAt)
	if err != nil {
		return nil, NewValidationError("Invalid date format. Expected ISO datetime or datetime-local format (YYYY-MM-DDTHH:mm)")
	}

	windowStart := scheduledAt.Add(-ConflictWindowBefore)
	windowEnd := scheduledAt.Add(ConflictWindowAfter)

	// Early check so an obviously taken slot never reaches the calendar API.
	// The repository re-checks under a lock at insert time.
	if assignee != nil {
		conflict, err := uc.PreTalks.FindConflict(ctx, assignee.ID, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, conflictError(assignee, conflict)
		}
	}

	attendees := dedupeEmails(mentor.Email, actor.Email)
	if assignee != nil {
		attendees = dedupeEmails(append(attendees, assignee.Email)...)
	}

	endTime := scheduledAt.Add(entity.PreTalkDuration)

	preTalk := &entity.PreTalk{
		ProspectID:  prospect.ID,
		MentorID:    mentor.ID,
		ScheduledAt: scheduledAt,
		Notes:       input.Notes,
	}
	if assignee != nil {
		preTalk.AssignedTo = &assignee.ID
	}

	txn := NewTransaction()

	txn.AddOperation("create_calendar_event", func(ctx context.Context) error {
		eventID, meetLink, err := uc.Calendar.CreateEvent(ctx, actor.RefreshToken, google.CreateEventInput{
			Summary:     "Pre-Talk: " + prospect.Name,
			Description: eventDescription(prospect, input.Notes),
			StartTime:   scheduledAt,
			EndTime:     endTime,
			Attendees:   attendees,
		})
		if err != nil {
			return err
		}
		preTalk.CalendarEventID = eventID
		preTalk.MeetLink = meetLink
		return nil
	})
	txn.AddCompensation("delete_calendar_event", func(ctx context.Context) error {
		return uc.Calendar.DeleteEvent(ctx, actor.RefreshToken, preTalk.CalendarEventID)
	})

	txn.AddOperation("persist_pre_talk", func(ctx context.Context) error {
		if err := uc.PreTalks.Create(ctx, preTalk, windowStart, windowEnd); err != nil {
			if errors.Is(err, database.ErrSlotTaken) && assignee != nil {
				// A competing request won the slot between our check and the
				// locked insert.
				conflict, ferr := uc.PreTalks.FindConflict(ctx, assignee.ID, windowStart, windowEnd)
				if ferr == nil && conflict != nil {
					return conflictError(assignee, conflict)
				}
				return NewConflictError(fmt.Sprintf(
					"Calendar conflict: %s already has a pre-talk in this time slot", assignee.Name))
			}
			return err
		}
		return nil
	})
	txn.AddCompensation("delete_pre_talk", func(ctx context.Context) error {
		return uc.PreTalks.Delete(ctx, preTalk.ID)
	})

	txn.AddOperation("update_prospect_status", func(ctx context.Context) error {
		return uc.Prospects.UpdateStatus(ctx, prospect.ID, entity.ProspectStatusPreTalkScheduled)
	})

	if err := txn.Execute(ctx); err != nil {
		var domainErr *DomainError
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, &TechnicalError{
			Code:    "SCHEDULING_FAILED",
			Message: "failed to schedule pre-talk: " + err.Error(),
		}
	}

	if err := uc.appendLogs(ctx, actor, mentor, assignee, prospect, preTalk, input.ScheduledAt); err != nil {
		return nil, &TechnicalError{
			Code:    "AUDIT_LOG_FAILED",
			Message: "pre-talk scheduled but audit log write failed: " + err.Error(),
		}
	}

	uc.notifyAssignee(ctx, actor, mentor, assignee, prospect, preTalk)

	return preTalk, nil
}

func conflictError(assignee *entity.User, conflict *entity.ScheduleConflict) *DomainError {
	return NewConflictError(fmt.Sprintf(
		"Calendar conflict: %s already has a pre-talk scheduled with %s at %s",
		assignee.Name, conflict.ProspectName,
		conflict.ScheduledAt.Local().Format("Jan 2, 2006 3:04 PM"),
	))
}

func eventDescription(prospect *entity.Prospect, notes string) string {
	description := fmt.Sprintf(
		"Pre-talk session with %s\n\nProspect Details:\nPhone: %s\nEmail: %s\nCity: %s\n",
		prospect.Name, orNA(prospect.Phone), orNA(prospect.Email), orNA(prospect.City),
	)
	if notes != "" {
		description += "\nNotes: " + notes
	}
	return description
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func dedupeEmails(emails ...string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range emails {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func (uc *SchedulePreTalkUseCase) appendLogs(
	ctx context.Context,
	actor, mentor, assignee *entity.User,
	prospect *entity.Prospect,
	preTalk *entity.PreTalk,
	rawScheduledAt string,
) error {
	meta, _ := json.Marshal(map[string]any{
		"pre_talk_id":  preTalk.ID,
		"mentor_id":    mentor.ID,
		"assigned_to":  preTalk.AssignedTo,
		"scheduled_at": rawScheduledAt,
	})
	err := uc.Logs.Append(ctx, &entity.ActivityLog{
		UserID:     actor.ID,
		ProspectID: &prospect.ID,
		Action:     entity.ActionPreTalkScheduled,
		Meta:       meta,
	})
	if err != nil {
		return err
	}

	// The assignee gets their own log row as an in-band notification, but
	// only when the session was booked onto somebody else's calendar.
	if assignee == nil || assignee.ID == mentor.ID || assignee.ID == actor.ID {
		return nil
	}
	meta, _ = json.Marshal(map[string]any{
		"pre_talk_id":      preTalk.ID,
		"assigned_by":      actor.ID,
		"assigned_by_name": actor.Name,
		"mentor_id":        mentor.ID,
		"mentor_name":      mentor.Name,
		"scheduled_at":     rawScheduledAt,
		"prospect_name":    prospect.Name,
		"meet_link":        preTalk.MeetLink,
	})
	return uc.Logs.Append(ctx, &entity.ActivityLog{
		UserID:     assignee.ID,
		ProspectID: &prospect.ID,
		Action:     entity.ActionPreTalkAssigned,
		Meta:       meta,
	})
}

func (uc *SchedulePreTalkUseCase) notifyAssignee(
	ctx context.Context,
	actor, mentor, assignee *entity.User,
	prospect *entity.Prospect,
	preTalk *entity.PreTalk,
) {
	if uc.Notifier == nil || assignee == nil || assignee.ID == actor.ID {
		return
	}
	payload := queue.AssignmentPayload{
		PreTalkID:      preTalk.ID,
		ProspectName:   prospect.Name,
		AssigneeEmail:  assignee.Email,
		AssigneeName:   assignee.Name,
		MentorName:     mentor.Name,
		AssignedByName: actor.Name,
		ScheduledAt:    preTalk.ScheduledAt.Format(time.RFC3339),
		MeetLink:       preTalk.MeetLink,
	}
	if err := uc.Notifier.PublishAssignment(ctx, payload); err != nil {
		// Best effort: the activity-log row above is the system of record.
		log.Printf("⚠️ assignment notification publish failed: %v", err)
	}
}
