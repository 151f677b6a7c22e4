package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/infra/queue"
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindMentorByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*entity.User, error) {
	args := m.Called(ctx, googleID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLogin(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockPreTalkRepository
type MockPreTalkRepository struct {
	mock.Mock
}

func (m *MockPreTalkRepository) FindByID(ctx context.Context, id string) (*entity.PreTalk, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PreTalk), args.Error(1)
}

func (m *MockPreTalkRepository) FindConflict(ctx context.Context, assigneeID string, windowStart, windowEnd time.Time) (*entity.ScheduleConflict, error) {
	args := m.Called(ctx, assigneeID, windowStart, windowEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ScheduleConflict), args.Error(1)
}

func (m *MockPreTalkRepository) Create(ctx context.Context, pt *entity.PreTalk, windowStart, windowEnd time.Time) error {
	args := m.Called(ctx, pt, windowStart, windowEnd)
	return args.Error(0)
}

func (m *MockPreTalkRepository) Update(ctx context.Context, id string, patch database.PreTalkPatch) (*entity.PreTalk, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PreTalk), args.Error(1)
}

func (m *MockPreTalkRepository) Complete(ctx context.Context, id, notesBlob string) (*entity.PreTalk, error) {
	args := m.Called(ctx, id, notesBlob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PreTalk), args.Error(1)
}

func (m *MockPreTalkRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Append(ctx context.Context, l *entity.ActivityLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockCalendarGateway
type MockCalendarGateway struct {
	mock.Mock
}

func (m *MockCalendarGateway) CreateEvent(ctx context.Context, refreshToken string, input google.CreateEventInput) (string, string, error) {
	args := m.Called(ctx, refreshToken, input)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockCalendarGateway) UpdateEventTime(ctx context.Context, refreshToken, eventID string, start, end time.Time) error {
	args := m.Called(ctx, refreshToken, eventID, start, end)
	return args.Error(0)
}

func (m *MockCalendarGateway) DeleteEvent(ctx context.Context, refreshToken, eventID string) error {
	args := m.Called(ctx, refreshToken, eventID)
	return args.Error(0)
}

// MockSheetsGateway
type MockSheetsGateway struct {
	mock.Mock
}

func (m *MockSheetsGateway) ReplaceSheet(ctx context.Context, refreshToken, sheetTitle string, headers []string, rows [][]any) error {
	args := m.Called(ctx, refreshToken, sheetTitle, headers, rows)
	return args.Error(0)
}

// MockIdentityGateway
type MockIdentityGateway struct {
	mock.Mock
}

func (m *MockIdentityGateway) ExchangeCode(ctx context.Context, code string) (*google.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*google.Token), args.Error(1)
}

func (m *MockIdentityGateway) UserInfo(ctx context.Context, accessToken string) (*google.Profile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*google.Profile), args.Error(1)
}

// MockSyncRepository
type MockSyncRepository struct {
	mock.Mock
}

func (m *MockSyncRepository) ExportProspects(ctx context.Context) ([][]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]any), args.Error(1)
}

func (m *MockSyncRepository) ExportPreTalks(ctx context.Context) ([][]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]any), args.Error(1)
}

func (m *MockSyncRepository) ExportActivityLogs(ctx context.Context) ([][]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]any), args.Error(1)
}

func (m *MockSyncRepository) UpdateSheetStatus(ctx context.Context, sheetName string, rowCount int) error {
	args := m.Called(ctx, sheetName, rowCount)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
