package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nrampal/prospecta/internal/entity"
)

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

// ProspectFilter narrows List results. Zero values are ignored.
type ProspectFilter struct {
	Status         string
	AssignedMentor string
	CreatedBy      string
	StartDate      string
	EndDate        string
}

// ProspectPatch carries the only fields a prospect update may touch. Nil
// pointers leave the column alone.
type ProspectPatch struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Age              *int    `json:"age"`
	City             *string `json:"city"`
	Profession       *string `json:"profession"`
	Source           *string `json:"source"`
	Status           *string `json:"status"`
	AssignedMentorID *string `json:"assigned_mentor_id"`
	ReferrerID       *string `json:"referrer_id"`
	Notes            *string `json:"notes"`
}

func (p ProspectPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Email == nil && p.Age == nil &&
		p.City == nil && p.Profession == nil && p.Source == nil && p.Status == nil &&
		p.AssignedMentorID == nil && p.ReferrerID == nil && p.Notes == nil
}

const prospectColumns = `id, name, COALESCE(phone, ''), COALESCE(email, ''), age, COALESCE(city, ''),
	COALESCE(profession, ''), source, status, assigned_mentor_id, referrer_id,
	COALESCE(notes, ''), created_by, created_at, updated_at`

func scanProspect(row interface{ Scan(...any) error }) (*entity.Prospect, error) {
	var p entity.Prospect
	err := row.Scan(
		&p.ID, &p.Name, &p.Phone, &p.Email, &p.Age, &p.City, &p.Profession,
		&p.Source, &p.Status, &p.AssignedMentorID, &p.ReferrerID, &p.Notes,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProspectRepository) Create(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (
			name, phone, email, age, city, profession, source,
			assigned_mentor_id, referrer_id, notes, created_by, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'new')
		RETURNING id, status, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Name, nullString(p.Phone), nullString(p.Email), p.Age,
		nullString(p.City), nullString(p.Profession), p.Source,
		p.AssignedMentorID, p.ReferrerID, nullString(p.Notes), p.CreatedBy,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProspectRepository) FindByID(ctx context.Context, id string) (*entity.Prospect, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+prospectColumns+` FROM prospects WHERE id = $1`, id)
	p, err := scanProspect(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProspectNotFound
	}
	return p, err
}

func (r *ProspectRepository) List(ctx context.Context, f ProspectFilter) ([]entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE 1=1`
	params := []any{}

	addFilter := func(clause, value string) {
		if value != "" {
			params = append(params, value)
			query += fmt.Sprintf(clause, len(params))
		}
	}
	addFilter(" AND status = $%d", f.Status)
	addFilter(" AND assigned_mentor_id = $%d", f.AssignedMentor)
	addFilter(" AND created_by = $%d", f.CreatedBy)
	addFilter(" AND created_at >= $%d", f.StartDate)
	addFilter(" AND created_at <= $%d", f.EndDate)
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prospects := []entity.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		prospects = append(prospects, *p)
	}
	return prospects, rows.Err()
}

// Update applies a patch. Columns come from a fixed allow-list, never from
// request keys.
func (r *ProspectRepository) Update(ctx context.Context, id string, patch ProspectPatch) (*entity.Prospect, error) {
	sets := []string{}
	params := []any{}

	set := func(column string, value any) {
		params = append(params, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(params)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Phone != nil {
		set("phone", nullString(*patch.Phone))
	}
	if patch.Email != nil {
		set("email", nullString(*patch.Email))
	}
	if patch.Age != nil {
		set("age", *patch.Age)
	}
	if patch.City != nil {
		set("city", nullString(*patch.City))
	}
	if patch.Profession != nil {
		set("profession", nullString(*patch.Profession))
	}
	if patch.Source != nil {
		set("source", *patch.Source)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.AssignedMentorID != nil {
		set("assigned_mentor_id", nullString(*patch.AssignedMentorID))
	}
	if patch.ReferrerID != nil {
		set("referrer_id", nullString(*patch.ReferrerID))
	}
	if patch.Notes != nil {
		set("notes", nullString(*patch.Notes))
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	params = append(params, id)
	query := fmt.Sprintf(
		"UPDATE prospects SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(params), prospectColumns,
	)

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, params...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProspectNotFound
	}
	return p, err
}

// UpdateStatus is the side-effect entry point used by the pre-talk flows. It
// overwrites unconditionally.
func (r *ProspectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE prospects SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}

// Delete hard-deletes; pre-talks and activity logs follow via FK cascades.
func (r *ProspectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM prospects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrProspectNotFound
	}
	return nil
}
