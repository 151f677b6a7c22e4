package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nrampal/prospecta/internal/entity"
)

type CompletePreTalkInput struct {
	Notes         string  `json:"notes"`
	InterestLevel *string `json:"interest_level"`
	Objections    *string `json:"objections"`
	NextSteps     *string `json:"next_steps"`
}

// completionSummary is the structured blob that replaces a completed
// session's free-text notes.
type completionSummary struct {
	Notes         string  `json:"notes"`
	InterestLevel *string `json:"interest_level"`
	Objections    *string `json:"objections"`
	NextSteps     *string `json:"next_steps"`
}

type CompletePreTalkUseCase struct {
	Prospects ProspectRepositoryInterface
	PreTalks  PreTalkRepositoryInterface
	Logs      ActivityLogRepositoryInterface
}

func NewCompletePreTalkUseCase(
	prospects ProspectRepositoryInterface,
	preTalks PreTalkRepositoryInterface,
	logs ActivityLogRepositoryInterface,
) *CompletePreTalkUseCase {
	return &CompletePreTalkUseCase{
		Prospects: prospects,
		PreTalks:  preTalks,
		Logs:      logs,
	}
}

// Execute marks the session completed and moves the parent prospect to
// follow_up, whatever its current status is.
func (uc *CompletePreTalkUseCase) Execute(ctx context.Context, actorID, id string, input CompletePreTalkInput) (*entity.PreTalk, error) {
	preTalk, err := uc.PreTalks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrPreTalkNotFound) {
			return nil, NewNotFoundError("Pre-talk not found")
		}
		return nil, err
	}

	blob, err := json.Marshal(completionSummary{
		Notes:         input.Notes,
		InterestLevel: input.InterestLevel,
		Objections:    input.Objections,
		NextSteps:     input.NextSteps,
	})
	if err != nil {
		return nil, err
	}

	completed, err := uc.PreTalks.Complete(ctx, id, string(blob))
	if err != nil {
		return nil, err
	}

	if err := uc.Prospects.UpdateStatus(ctx, preTalk.ProspectID, entity.ProspectStatusFollowUp); err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(map[string]any{
		"pre_talk_id":    id,
		"interest_level": input.InterestLevel,
		"objections":     input.Objections,
	})
	err = uc.Logs.Append(ctx, &entity.ActivityLog{
		UserID:     actorID,
		ProspectID: &preTalk.ProspectID,
		Action:     entity.ActionPreTalkCompleted,
		Meta:       meta,
	})
	if err != nil {
		return nil, err
	}

	return completed, nil
}
