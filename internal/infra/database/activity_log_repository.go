package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/nrampal/prospecta/internal/entity"
)

type ActivityLogRepository struct {
	DB *sql.DB
}

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// Append writes one audit row. Rows are never touched again.
func (r *ActivityLogRepository) Append(ctx context.Context, l *entity.ActivityLog) error {
	meta := l.Meta
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO activity_logs (user_id, prospect_id, action, meta)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		l.UserID, l.ProspectID, l.Action, []byte(meta),
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *ActivityLogRepository) ListByProspect(ctx context.Context, prospectID string) ([]entity.ActivityLog, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT al.id, al.user_id, al.prospect_id, al.action, al.meta, al.created_at,
		       COALESCE(u.name, '')
		FROM activity_logs al
		LEFT JOIN users u ON al.user_id = u.id
		WHERE al.prospect_id = $1
		ORDER BY al.created_at DESC`, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []entity.ActivityLog{}
	for rows.Next() {
		var l entity.ActivityLog
		var meta []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProspectID, &l.Action, &meta, &l.CreatedAt, &l.UserName); err != nil {
			return nil, err
		}
		l.Meta = json.RawMessage(meta)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
