package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/nrampal/prospecta/internal/entity"
)

// SyncRepository produces the flat row sets exported to Google Sheets and
// tracks per-sheet sync state.
type SyncRepository struct {
	DB *sql.DB
}

func NewSyncRepository(db *sql.DB) *SyncRepository {
	return &SyncRepository{DB: db}
}

// activityLogExportLimit caps the export to the most recent rows; the audit
// trail grows without bound.
const activityLogExportLimit = 10000

func (r *SyncRepository) ExportProspects(ctx context.Context) ([][]any, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.name, COALESCE(p.phone, ''), COALESCE(p.email, ''),
		       COALESCE(p.age::text, ''), COALESCE(p.city, ''), COALESCE(p.profession, ''),
		       p.source, p.status,
		       COALESCE(u_mentor.name, ''), COALESCE(u_creator.name, ''),
		       COALESCE(p.notes, ''), p.created_at, p.updated_at
		FROM prospects p
		LEFT JOIN users u_mentor ON p.assigned_mentor_id = u_mentor.id
		LEFT JOIN users u_creator ON p.created_by = u_creator.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]any{}
	for rows.Next() {
		var id, name, phone, email, age, city, profession, source, status, mentor, creator, notes string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &name, &phone, &email, &age, &city, &profession,
			&source, &status, &mentor, &creator, &notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, []any{
			id, name, phone, email, age, city, profession, source, status,
			mentor, creator, notes,
			createdAt.UTC().Format(time.RFC3339), updatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, rows.Err()
}

func (r *SyncRepository) ExportPreTalks(ctx context.Context) ([][]any, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT pt.id, pt.prospect_id, COALESCE(p.name, ''),
		       pt.mentor_id, COALESCE(u_mentor.name, ''),
		       pt.scheduled_at, pt.status, COALESCE(pt.meet_link, ''),
		       COALESCE(pt.notes, ''), pt.created_at, pt.updated_at
		FROM pre_talks pt
		LEFT JOIN prospects p ON pt.prospect_id = p.id
		LEFT JOIN users u_mentor ON pt.mentor_id = u_mentor.id
		ORDER BY pt.scheduled_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]any{}
	for rows.Next() {
		var id, prospectID, prospectName, mentorID, mentorName, status, meetLink, notes string
		var scheduledAt, createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &prospectID, &prospectName, &mentorID, &mentorName,
			&scheduledAt, &status, &meetLink, &notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		out = append(out, []any{
			id, prospectID, prospectName, mentorID, mentorName,
			scheduledAt.UTC().Format(time.RFC3339), status, meetLink, notes,
			createdAt.UTC().Format(time.RFC3339), updatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, rows.Err()
}

func (r *SyncRepository) ExportActivityLogs(ctx context.Context) ([][]any, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT al.id, al.user_id, COALESCE(u.name, ''),
		       COALESCE(al.prospect_id::text, ''), COALESCE(p.name, ''),
		       al.action, al.meta::text, al.created_at
		FROM activity_logs al
		LEFT JOIN users u ON al.user_id = u.id
		LEFT JOIN prospects p ON al.prospect_id = p.id
		ORDER BY al.created_at DESC
		LIMIT $1`, activityLogExportLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]any{}
	for rows.Next() {
		var id, userID, userName, prospectID, prospectName, action, meta string
		var createdAt time.Time
		if err := rows.Scan(&id, &userID, &userName, &prospectID, &prospectName,
			&action, &meta, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, []any{
			id, userID, userName, prospectID, prospectName, action, meta,
			createdAt.UTC().Format(time.RFC3339),
		})
	}
	return out, rows.Err()
}

func (r *SyncRepository) UpdateSheetStatus(ctx context.Context, sheetName string, rowCount int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE sheets_sync_status
		SET last_synced_at = NOW(), last_sync_row_count = $1, updated_at = NOW()
		WHERE sheet_name = $2`, rowCount, sheetName)
	return err
}

func (r *SyncRepository) ListSheetStatuses(ctx context.Context) ([]entity.SheetSyncStatus, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT sheet_name, last_synced_at, last_sync_row_count, updated_at
		FROM sheets_sync_status
		ORDER BY sheet_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := []entity.SheetSyncStatus{}
	for rows.Next() {
		var s entity.SheetSyncStatus
		if err := rows.Scan(&s.SheetName, &s.LastSyncedAt, &s.LastSyncRowCount, &s.UpdatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}
