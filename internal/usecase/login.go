package usecase

import (
	"context"
	"errors"

	"github.com/nrampal/prospecta/internal/entity"
)

type LoginUseCase struct {
	Users    UserRepositoryInterface
	Identity IdentityGateway
}

func NewLoginUseCase(users UserRepositoryInterface, identity IdentityGateway) *LoginUseCase {
	return &LoginUseCase{Users: users, Identity: identity}
}

// Execute exchanges an authorization code for a local user: existing accounts
// get their profile and credential refreshed, new accounts start as
// unapproved members. The very first account in an empty database becomes an
// approved admin so someone can unlock everyone else.
func (uc *LoginUseCase) Execute(ctx context.Context, code string) (*entity.User, error) {
	if code == "" {
		return nil, NewValidationError("Authorization code is required")
	}

	tokens, err := uc.Identity.ExchangeCode(ctx, code)
	if err != nil {
		return nil, &TechnicalError{Code: "IDENTITY_EXCHANGE_FAILED", Message: "Authentication failed: " + err.Error()}
	}
	if tokens.AccessToken == "" {
		return nil, &TechnicalError{Code: "IDENTITY_EXCHANGE_FAILED", Message: "Failed to get access token"}
	}

	profile, err := uc.Identity.UserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, &TechnicalError{Code: "IDENTITY_PROFILE_FAILED", Message: "Failed to get user information: " + err.Error()}
	}

	user, err := uc.Users.FindByGoogleIDOrEmail(ctx, profile.ID, profile.Email)
	switch {
	case err == nil:
		user.GoogleID = profile.ID
		user.Name = profile.Name
		user.AvatarURL = profile.Picture
		user.RefreshToken = tokens.RefreshToken
		if err := uc.Users.UpdateLogin(ctx, user); err != nil {
			return nil, err
		}
		return user, nil

	case errors.Is(err, entity.ErrUserNotFound):
		count, err := uc.Users.Count(ctx)
		if err != nil {
			return nil, err
		}
		user = &entity.User{
			GoogleID:     profile.ID,
			Name:         profile.Name,
			Email:        profile.Email,
			AvatarURL:    profile.Picture,
			RefreshToken: tokens.RefreshToken,
			Role:         entity.RoleMember,
			IsApproved:   false,
		}
		if count == 0 {
			user.Role = entity.RoleAdmin
			user.IsApproved = true
		}
		if err := uc.Users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil

	default:
		return nil, err
	}
}
