package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
	"github.com/nrampal/prospecta/internal/usecase"
)

type SyncHandler struct {
	SyncUC *usecase.SyncSheetsUseCase
	Users  *database.UserRepository
	Sync   *database.SyncRepository
}

func NewSyncHandler(syncUC *usecase.SyncSheetsUseCase, users *database.UserRepository, sync *database.SyncRepository) *SyncHandler {
	return &SyncHandler{SyncUC: syncUC, Users: users, Sync: sync}
}

// HandleSync exports all three sheets using the requesting user's own Google
// credential.
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	user, err := h.Users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if user.RefreshToken == "" {
		writeErrorMessage(w, http.StatusBadRequest, "No Google credential on file. Re-login to grant Sheets access.")
		return
	}

	log.Println("📋 Starting manual Google Sheets sync...")
	if err := h.SyncUC.Execute(r.Context(), user.RefreshToken); err != nil {
		middleware.RecordSheetSync("manual", "error")
		middleware.RecordIntegrationError("sheets")
		writeError(w, err)
		return
	}
	middleware.RecordSheetSync("manual", "success")
	log.Println("✅ Manual sync completed")

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Successfully synced all data to Google Sheets",
		"synced_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.Sync.ListSheetStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	var lastSync *time.Time
	for i := range sheets {
		if t := sheets[i].LastSyncedAt; t != nil && (lastSync == nil || t.After(*lastSync)) {
			lastSync = t
		}
	}

	writeJSON(w, http.StatusOK, struct {
		Sheets   []entity.SheetSyncStatus `json:"sheets"`
		LastSync *time.Time               `json:"last_sync"`
	}{Sheets: sheets, LastSync: lastSync})
}
