package entity

import "time"

// Exported sheet names. One sheets_sync_status row exists per sheet.
const (
	SheetProspects    = "prospects"
	SheetPreTalks     = "pretalks"
	SheetActivityLogs = "activity_logs"
)

type SheetSyncStatus struct {
	SheetName        string     `json:"sheet_name"`
	LastSyncedAt     *time.Time `json:"last_synced_at"`
	LastSyncRowCount int        `json:"last_sync_row_count"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
