package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
)

type UpdatePreTalkInput struct {
	ScheduledAt *string `json:"scheduled_at"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

type UpdatePreTalkUseCase struct {
	Users    UserRepositoryInterface
	PreTalks PreTalkRepositoryInterface
	Logs     ActivityLogRepositoryInterface
	Calendar CalendarGateway
}

func NewUpdatePreTalkUseCase(
	users UserRepositoryInterface,
	preTalks PreTalkRepositoryInterface,
	logs ActivityLogRepositoryInterface,
	calendar CalendarGateway,
) *UpdatePreTalkUseCase {
	return &UpdatePreTalkUseCase{
		Users:    users,
		PreTalks: preTalks,
		Logs:     logs,
		Calendar: calendar,
	}
}

// Execute patches a pre-talk. A time change moves the calendar event first
// and aborts the local update when that fails. Conflict detection is NOT
// re-run on reschedule; only creation checks the window.
func (uc *UpdatePreTalkUseCase) Execute(ctx context.Context, actorID, id string, input UpdatePreTalkInput) (*entity.PreTalk, error) {
	preTalk, err := uc.PreTalks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrPreTalkNotFound) {
			return nil, NewNotFoundError("Pre-talk not found")
		}
		return nil, err
	}

	if input.Status != nil && !entity.IsValidPreTalkStatus(*input.Status) {
		return nil, NewValidationError("Invalid status")
	}

	patch := database.PreTalkPatch{
		Notes:  input.Notes,
		Status: input.Status,
	}

	if input.ScheduledAt != nil {
		scheduledAt, err := ParseScheduledAt(*input.ScheduledAt)
		if err != nil {
			return nil, NewValidationError("Invalid date format")
		}
		patch.ScheduledAt = &scheduledAt

		if preTalk.CalendarEventID != "" {
			actor, err := uc.Users.FindByID(ctx, actorID)
			if err != nil {
				return nil, err
			}
			endTime := scheduledAt.Add(entity.PreTalkDuration)
			if err := uc.Calendar.UpdateEventTime(ctx, actor.RefreshToken, preTalk.CalendarEventID, scheduledAt, endTime); err != nil {
				return nil, &TechnicalError{
					Code:    "CALENDAR_UPDATE_FAILED",
					Message: "failed to update calendar event: " + err.Error(),
				}
			}
		}
	}

	updated, err := uc.PreTalks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(map[string]any{
		"pre_talk_id": id,
		"changes":     input,
	})
	err = uc.Logs.Append(ctx, &entity.ActivityLog{
		UserID:     actorID,
		ProspectID: &preTalk.ProspectID,
		Action:     entity.ActionPreTalkUpdated,
		Meta:       meta,
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
