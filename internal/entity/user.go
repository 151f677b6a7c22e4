package entity

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMentor = "mentor"
	RoleMember = "member"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMentorNotFound   = errors.New("mentor not found")
	ErrProspectNotFound = errors.New("prospect not found")
	ErrPreTalkNotFound  = errors.New("pre-talk not found")
)

type User struct {
	ID           string    `json:"id"`
	GoogleID     string    `json:"-"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	IsApproved   bool      `json:"is_approved"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanMentor reports whether the user may be booked as the mentor of a pre-talk.
func (u *User) CanMentor() bool {
	return u.Role == RoleAdmin || u.Role == RoleMentor
}
