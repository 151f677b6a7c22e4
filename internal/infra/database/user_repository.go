package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nrampal/prospecta/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, google_id, name, email, COALESCE(avatar_url, ''), role, is_approved, COALESCE(refresh_token, ''), created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.GoogleID, &u.Name, &u.Email, &u.AvatarURL,
		&u.Role, &u.IsApproved, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return u, err
}

// FindMentorByID only matches users allowed to run pre-talks.
func (r *UserRepository) FindMentorByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND role IN ($2, $3)`,
		id, entity.RoleMentor, entity.RoleAdmin,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMentorNotFound
	}
	return u, err
}

func (r *UserRepository) FindByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_id = $1 OR email = $2`,
		googleID, email,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (google_id, name, email, avatar_url, refresh_token, role, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		u.GoogleID, u.Name, u.Email, nullString(u.AvatarURL), nullString(u.RefreshToken),
		u.Role, u.IsApproved,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// UpdateLogin refreshes the profile fields captured on every sign-in. An empty
// refresh token keeps the stored one (Google only re-issues it on consent).
func (r *UserRepository) UpdateLogin(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET google_id = $1, name = $2, avatar_url = $3,
		    refresh_token = COALESCE($4, refresh_token),
		    updated_at = NOW()
		WHERE id = $5
		RETURNING COALESCE(refresh_token, ''), updated_at
	`
	return r.DB.QueryRowContext(ctx, query,
		u.GoogleID, u.Name, nullString(u.AvatarURL), nullString(u.RefreshToken), u.ID,
	).Scan(&u.RefreshToken, &u.UpdatedAt)
}

func (r *UserRepository) ListApproved(ctx context.Context) ([]entity.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListPending(ctx context.Context) ([]entity.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_approved = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListMentors(ctx context.Context) ([]entity.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role IN ($1, $2) ORDER BY name`,
		entity.RoleAdmin, entity.RoleMentor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]entity.User, error) {
	users := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Approve(ctx context.Context, id string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE users SET is_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return u, err
}

func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (*entity.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, role, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrUserNotFound
	}
	return u, err
}

// Delete removes a user; owned prospects go with it via the FK cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}
