package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/usecase"
)

func TestSyncSheetsAllSucceed(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockSyncRepository)
	mockSheets := new(MockSheetsGateway)

	prospectRows := [][]any{{"p-1", "Carlos Lima"}, {"p-2", "Joana Alves"}}
	preTalkRows := [][]any{{"pt-1", "p-1"}}
	logRows := [][]any{}

	mockRepo.On("ExportProspects", ctx).Return(prospectRows, nil)
	mockRepo.On("ExportPreTalks", ctx).Return(preTalkRows, nil)
	mockRepo.On("ExportActivityLogs", ctx).Return(logRows, nil)

	mockSheets.On("ReplaceSheet", ctx, "service-token", "Prospects", mock.Anything, prospectRows).Return(nil)
	mockSheets.On("ReplaceSheet", ctx, "service-token", "PreTalks", mock.Anything, preTalkRows).Return(nil)
	mockSheets.On("ReplaceSheet", ctx, "service-token", "ActivityLogs", mock.Anything, logRows).Return(nil)

	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetProspects, 2).Return(nil)
	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetPreTalks, 1).Return(nil)
	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetActivityLogs, 0).Return(nil)

	uc := usecase.NewSyncSheetsUseCase(mockRepo, mockSheets)

	err := uc.Execute(ctx, "service-token")

	assert.NoError(t, err)
	mockSheets.AssertNumberOfCalls(t, "ReplaceSheet", 3)
	mockRepo.AssertNumberOfCalls(t, "UpdateSheetStatus", 3)
}

func TestSyncSheetsPartialFailureStillRunsSiblings(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockSyncRepository)
	mockSheets := new(MockSheetsGateway)

	mockRepo.On("ExportProspects", ctx).Return([][]any{}, nil)
	mockRepo.On("ExportPreTalks", ctx).Return(nil, errors.New("database error"))
	mockRepo.On("ExportActivityLogs", ctx).Return([][]any{}, nil)

	mockSheets.On("ReplaceSheet", ctx, "service-token", "Prospects", mock.Anything, mock.Anything).Return(nil)
	mockSheets.On("ReplaceSheet", ctx, "service-token", "ActivityLogs", mock.Anything, mock.Anything).Return(nil)

	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetProspects, 0).Return(nil)
	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetActivityLogs, 0).Return(nil)

	uc := usecase.NewSyncSheetsUseCase(mockRepo, mockSheets)

	err := uc.Execute(ctx, "service-token")

	assert.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Contains(t, err.Error(), "pretalks")

	// The two healthy exports still land, only pretalks is skipped.
	mockSheets.AssertNumberOfCalls(t, "ReplaceSheet", 2)
	mockRepo.AssertCalled(t, "UpdateSheetStatus", ctx, entity.SheetProspects, 0)
	mockRepo.AssertCalled(t, "UpdateSheetStatus", ctx, entity.SheetActivityLogs, 0)
}

func TestSyncSheetsMissingCredential(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockSyncRepository)
	mockSheets := new(MockSheetsGateway)

	uc := usecase.NewSyncSheetsUseCase(mockRepo, mockSheets)

	err := uc.Execute(ctx, "")

	assert.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	mockRepo.AssertNotCalled(t, "ExportProspects")
}

func TestSyncSheetsStatusNotUpdatedOnPushFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockSyncRepository)
	mockSheets := new(MockSheetsGateway)

	mockRepo.On("ExportProspects", ctx).Return([][]any{}, nil)
	mockRepo.On("ExportPreTalks", ctx).Return([][]any{}, nil)
	mockRepo.On("ExportActivityLogs", ctx).Return([][]any{}, nil)

	mockSheets.On("ReplaceSheet", ctx, "service-token", "Prospects", mock.Anything, mock.Anything).
		Return(errors.New("google: quota exceeded"))
	mockSheets.On("ReplaceSheet", ctx, "service-token", "PreTalks", mock.Anything, mock.Anything).Return(nil)
	mockSheets.On("ReplaceSheet", ctx, "service-token", "ActivityLogs", mock.Anything, mock.Anything).Return(nil)

	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetPreTalks, 0).Return(nil)
	mockRepo.On("UpdateSheetStatus", ctx, entity.SheetActivityLogs, 0).Return(nil)

	uc := usecase.NewSyncSheetsUseCase(mockRepo, mockSheets)

	err := uc.Execute(ctx, "service-token")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prospects")
	mockRepo.AssertNotCalled(t, "UpdateSheetStatus", ctx, entity.SheetProspects, 0)
}
