package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nrampal/prospecta/internal/entity"
)

type PreTalkRepository struct {
	DB *sql.DB
}

func NewPreTalkRepository(db *sql.DB) *PreTalkRepository {
	return &PreTalkRepository{DB: db}
}

// ErrSlotTaken is returned when the in-transaction conflict re-check finds a
// competing booking that appeared after the caller's own check.
var ErrSlotTaken = errors.New("assignee slot already taken")

type PreTalkFilter struct {
	ProspectID string
	MentorID   string
	Status     string
}

type PreTalkPatch struct {
	ScheduledAt *time.Time
	Notes       *string
	Status      *string
}

const conflictQuery = `
	SELECT pt.id, COALESCE(p.name, ''), pt.scheduled_at
	FROM pre_talks pt
	LEFT JOIN prospects p ON pt.prospect_id = p.id
	WHERE pt.assigned_to = $1
	AND pt.status != 'canceled'
	AND pt.scheduled_at >= $2
	AND pt.scheduled_at < $3
	LIMIT 1
`

// FindConflict looks for a non-canceled session of the assignee inside
// [windowStart, windowEnd). Returns nil when the slot is free.
func (r *PreTalkRepository) FindConflict(ctx context.Context, assigneeID string, windowStart, windowEnd time.Time) (*entity.ScheduleConflict, error) {
	return findConflict(ctx, r.DB, assigneeID, windowStart, windowEnd)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func findConflict(ctx context.Context, q querier, assigneeID string, windowStart, windowEnd time.Time) (*entity.ScheduleConflict, error) {
	var c entity.ScheduleConflict
	err := q.QueryRowContext(ctx, conflictQuery, assigneeID, windowStart, windowEnd).
		Scan(&c.PreTalkID, &c.ProspectName, &c.ScheduledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the pre-talk. When an assignee is present, the insert runs in
// a transaction that locks the assignee's user row and re-checks the conflict
// window, so two concurrent bookings for the same person cannot both pass.
func (r *PreTalkRepository) Create(ctx context.Context, pt *entity.PreTalk, windowStart, windowEnd time.Time) error {
	if pt.AssignedTo == nil {
		return r.insert(ctx, r.DB, pt)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serializes competing check-and-insert sequences for this assignee.
	if _, err := tx.ExecContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, *pt.AssignedTo); err != nil {
		return err
	}

	conflict, err := findConflict(ctx, tx, *pt.AssignedTo, windowStart, windowEnd)
	if err != nil {
		return err
	}
	if conflict != nil {
		return ErrSlotTaken
	}

	if err := r.insert(ctx, tx, pt); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PreTalkRepository) insert(ctx context.Context, q querier, pt *entity.PreTalk) error {
	query := `
		INSERT INTO pre_talks (
			prospect_id, mentor_id, assigned_to, scheduled_at,
			calendar_event_id, meet_link, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled', $7)
		RETURNING id, status, created_at, updated_at
	`
	return q.QueryRowContext(ctx, query,
		pt.ProspectID, pt.MentorID, pt.AssignedTo, pt.ScheduledAt,
		nullString(pt.CalendarEventID), nullString(pt.MeetLink), nullString(pt.Notes),
	).Scan(&pt.ID, &pt.Status, &pt.CreatedAt, &pt.UpdatedAt)
}

const preTalkSelect = `
	SELECT pt.id, pt.prospect_id, pt.mentor_id, pt.assigned_to, pt.scheduled_at,
	       COALESCE(pt.calendar_event_id, ''), COALESCE(pt.meet_link, ''),
	       pt.status, COALESCE(pt.notes, ''), pt.created_at, pt.updated_at,
	       COALESCE(p.name, ''), COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM pre_talks pt
	LEFT JOIN prospects p ON pt.prospect_id = p.id
	LEFT JOIN users u ON pt.mentor_id = u.id
`

func scanPreTalk(row interface{ Scan(...any) error }) (*entity.PreTalk, error) {
	var pt entity.PreTalk
	err := row.Scan(
		&pt.ID, &pt.ProspectID, &pt.MentorID, &pt.AssignedTo, &pt.ScheduledAt,
		&pt.CalendarEventID, &pt.MeetLink, &pt.Status, &pt.Notes,
		&pt.CreatedAt, &pt.UpdatedAt, &pt.ProspectName, &pt.MentorName, &pt.MentorEmail,
	)
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *PreTalkRepository) FindByID(ctx context.Context, id string) (*entity.PreTalk, error) {
	row := r.DB.QueryRowContext(ctx, preTalkSelect+` WHERE pt.id = $1`, id)
	pt, err := scanPreTalk(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPreTalkNotFound
	}
	return pt, err
}

func (r *PreTalkRepository) List(ctx context.Context, f PreTalkFilter) ([]entity.PreTalk, error) {
	query := preTalkSelect + ` WHERE 1=1`
	params := []any{}

	addFilter := func(clause, value string) {
		if value != "" {
			params = append(params, value)
			query += fmt.Sprintf(clause, len(params))
		}
	}
	addFilter(" AND pt.prospect_id = $%d", f.ProspectID)
	addFilter(" AND pt.mentor_id = $%d", f.MentorID)
	addFilter(" AND pt.status = $%d", f.Status)
	query += " ORDER BY pt.scheduled_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	preTalks := []entity.PreTalk{}
	for rows.Next() {
		pt, err := scanPreTalk(rows)
		if err != nil {
			return nil, err
		}
		preTalks = append(preTalks, *pt)
	}
	return preTalks, rows.Err()
}

func (r *PreTalkRepository) ListByProspect(ctx context.Context, prospectID string) ([]entity.PreTalk, error) {
	return r.List(ctx, PreTalkFilter{ProspectID: prospectID})
}

func (r *PreTalkRepository) Update(ctx context.Context, id string, patch PreTalkPatch) (*entity.PreTalk, error) {
	sets := []string{}
	params := []any{}

	set := func(column string, value any) {
		params = append(params, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(params)))
	}
	if patch.ScheduledAt != nil {
		set("scheduled_at", *patch.ScheduledAt)
	}
	if patch.Notes != nil {
		set("notes", nullString(*patch.Notes))
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	params = append(params, id)
	query := fmt.Sprintf(
		"UPDATE pre_talks pt SET %s, updated_at = NOW() WHERE pt.id = $%d RETURNING pt.id",
		strings.Join(sets, ", "), len(params),
	)

	var updatedID string
	err := r.DB.QueryRowContext(ctx, query, params...).Scan(&updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPreTalkNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, updatedID)
}

// Complete stamps the session completed and replaces its notes with the
// structured summary blob.
func (r *PreTalkRepository) Complete(ctx context.Context, id, notesBlob string) (*entity.PreTalk, error) {
	var updatedID string
	err := r.DB.QueryRowContext(ctx, `
		UPDATE pre_talks SET status = 'completed', notes = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id`, notesBlob, id).Scan(&updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPreTalkNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, updatedID)
}

// Delete is the saga compensation for a failed scheduling sequence.
func (r *PreTalkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM pre_talks WHERE id = $1`, id)
	return err
}
