package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/nrampal/prospecta/internal/entity"
)

var (
	prospectHeaders = []string{
		"ID", "Name", "Phone", "Email", "Age", "City", "Profession", "Source",
		"Status", "Assigned Mentor", "Created By", "Notes", "Created At", "Updated At",
	}
	preTalkHeaders = []string{
		"ID", "Prospect ID", "Prospect Name", "Mentor ID", "Mentor Name",
		"Scheduled At", "Status", "Meet Link", "Notes", "Created At", "Updated At",
	}
	activityLogHeaders = []string{
		"ID", "User ID", "User Name", "Prospect ID", "Prospect Name", "Action",
		"Meta", "Created At",
	}
)

// Sheet tab titles in the target spreadsheet, keyed by the status row each
// export maintains.
var sheetTitles = map[string]string{
	entity.SheetProspects:    "Prospects",
	entity.SheetPreTalks:     "PreTalks",
	entity.SheetActivityLogs: "ActivityLogs",
}

type SyncSheetsUseCase struct {
	Repo   SyncRepositoryInterface
	Sheets SheetsGateway
}

func NewSyncSheetsUseCase(repo SyncRepositoryInterface, sheets SheetsGateway) *SyncSheetsUseCase {
	return &SyncSheetsUseCase{Repo: repo, Sheets: sheets}
}

// Execute pushes all three exports concurrently. A failing export does not
// stop its siblings, but any failure fails the whole run.
func (uc *SyncSheetsUseCase) Execute(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return NewValidationError("No sync credential available")
	}

	type subSync struct {
		statusKey string
		headers   []string
		export    func(context.Context) ([][]any, error)
	}
	subSyncs := []subSync{
		{entity.SheetProspects, prospectHeaders, uc.Repo.ExportProspects},
		{entity.SheetPreTalks, preTalkHeaders, uc.Repo.ExportPreTalks},
		{entity.SheetActivityLogs, activityLogHeaders, uc.Repo.ExportActivityLogs},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(subSyncs))

	for i, s := range subSyncs {
		wg.Add(1)
		go func(i int, s subSync) {
			defer wg.Done()
			errs[i] = uc.syncOne(ctx, refreshToken, s.statusKey, s.headers, s.export)
		}(i, s)
	}
	wg.Wait()

	failed := []string{}
	for i, err := range errs {
		if err != nil {
			log.Printf("❌ sheet sync %s failed: %v", subSyncs[i].statusKey, err)
			failed = append(failed, subSyncs[i].statusKey)
		}
	}
	if len(failed) > 0 {
		return &TechnicalError{
			Code:    "SYNC_FAILED",
			Message: "Sync failed for sheets: " + strings.Join(failed, ", "),
		}
	}
	return nil
}

func (uc *SyncSheetsUseCase) syncOne(
	ctx context.Context,
	refreshToken, statusKey string,
	headers []string,
	export func(context.Context) ([][]any, error),
) error {
	rows, err := export(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := uc.Sheets.ReplaceSheet(ctx, refreshToken, sheetTitles[statusKey], headers, rows); err != nil {
		return err
	}
	return uc.Repo.UpdateSheetStatus(ctx, statusKey, len(rows))
}
