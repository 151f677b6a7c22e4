package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/usecase"
)

func TestCompletePreTalkSuccess(t *testing.T) {
	ctx := context.Background()

	preTalk := &entity.PreTalk{
		ID:         "pt-1",
		ProspectID: "prospect-1",
		Status:     entity.PreTalkStatusScheduled,
	}
	completed := &entity.PreTalk{
		ID:         "pt-1",
		ProspectID: "prospect-1",
		Status:     entity.PreTalkStatusCompleted,
	}

	mockProspects := new(MockProspectRepository)
	mockPreTalks := new(MockPreTalkRepository)
	mockLogs := new(MockActivityLogRepository)

	mockPreTalks.On("FindByID", ctx, "pt-1").Return(preTalk, nil)
	mockPreTalks.On("Complete", ctx, "pt-1", mock.MatchedBy(func(blob string) bool {
		var summary map[string]any
		if err := json.Unmarshal([]byte(blob), &summary); err != nil {
			return false
		}
		return summary["notes"] == "very engaged" && summary["interest_level"] == "high"
	})).Return(completed, nil)
	mockProspects.On("UpdateStatus", ctx, "prospect-1", entity.ProspectStatusFollowUp).Return(nil)
	mockLogs.On("Append", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCompletePreTalkUseCase(mockProspects, mockPreTalks, mockLogs)

	result, err := uc.Execute(ctx, "mentor-1", "pt-1", usecase.CompletePreTalkInput{
		Notes:         "very engaged",
		InterestLevel: ptr("high"),
		NextSteps:     ptr("send contract"),
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.PreTalkStatusCompleted, result.Status)

	mockProspects.AssertCalled(t, "UpdateStatus", ctx, "prospect-1", entity.ProspectStatusFollowUp)
	mockLogs.AssertNumberOfCalls(t, "Append", 1)
}

func TestCompletePreTalkNotFound(t *testing.T) {
	ctx := context.Background()

	mockProspects := new(MockProspectRepository)
	mockPreTalks := new(MockPreTalkRepository)
	mockLogs := new(MockActivityLogRepository)

	mockPreTalks.On("FindByID", ctx, "missing").Return(nil, entity.ErrPreTalkNotFound)

	uc := usecase.NewCompletePreTalkUseCase(mockProspects, mockPreTalks, mockLogs)

	result, err := uc.Execute(ctx, "mentor-1", "missing", usecase.CompletePreTalkInput{})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, usecase.IsDomainError(err))
	mockPreTalks.AssertNotCalled(t, "Complete")
	mockProspects.AssertNotCalled(t, "UpdateStatus")
}
