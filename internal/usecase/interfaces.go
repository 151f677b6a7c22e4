package usecase

import (
	"context"
	"time"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/infra/queue"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindMentorByID(ctx context.Context, id string) (*entity.User, error)
	FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u *entity.User) error
	UpdateLogin(ctx context.Context, u *entity.User) error
}

type ProspectRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.Prospect, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PreTalkRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entity.PreTalk, error)
	FindConflict(ctx context.Context, assigneeID string, windowStart, windowEnd time.Time) (*entity.ScheduleConflict, error)
	Create(ctx context.Context, pt *entity.PreTalk, windowStart, windowEnd time.Time) error
	Update(ctx context.Context, id string, patch database.PreTalkPatch) (*entity.PreTalk, error)
	Complete(ctx context.Context, id, notesBlob string) (*entity.PreTalk, error)
	Delete(ctx context.Context, id string) error
}

type ActivityLogRepositoryInterface interface {
	Append(ctx context.Context, l *entity.ActivityLog) error
}

type CalendarGateway interface {
	CreateEvent(ctx context.Context, refreshToken string, input google.CreateEventInput) (eventID, meetLink string, err error)
	UpdateEventTime(ctx context.Context, refreshToken, eventID string, start, end time.Time) error
	DeleteEvent(ctx context.Context, refreshToken, eventID string) error
}

type SheetsGateway interface {
	ReplaceSheet(ctx context.Context, refreshToken, sheetTitle string, headers []string, rows [][]any) error
}

type IdentityGateway interface {
	ExchangeCode(ctx context.Context, code string) (*google.Token, error)
	UserInfo(ctx context.Context, accessToken string) (*google.Profile, error)
}

type SyncRepositoryInterface interface {
	ExportProspects(ctx context.Context) ([][]any, error)
	ExportPreTalks(ctx context.Context) ([][]any, error)
	ExportActivityLogs(ctx context.Context) ([][]any, error)
	UpdateSheetStatus(ctx context.Context, sheetName string, rowCount int) error
}

type NotificationProducerInterface interface {
	PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error
}
