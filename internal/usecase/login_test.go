package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/usecase"
)

func loginMocks() (*MockUserRepository, *MockIdentityGateway) {
	mockUsers := new(MockUserRepository)
	mockIdentity := new(MockIdentityGateway)

	mockIdentity.On("ExchangeCode", mock.Anything, "auth-code").Return(&google.Token{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)
	mockIdentity.On("UserInfo", mock.Anything, "access-token").Return(&google.Profile{
		ID:      "google-123",
		Email:   "ana@example.com",
		Name:    "Ana Souza",
		Picture: "https://lh3.googleusercontent.com/a/photo",
	}, nil)

	return mockUsers, mockIdentity
}

func TestLoginFirstUserBecomesApprovedAdmin(t *testing.T) {
	ctx := context.Background()
	mockUsers, mockIdentity := loginMocks()

	mockUsers.On("FindByGoogleIDOrEmail", ctx, "google-123", "ana@example.com").
		Return(nil, entity.ErrUserNotFound)
	mockUsers.On("Count", ctx).Return(0, nil)
	mockUsers.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLoginUseCase(mockUsers, mockIdentity)

	user, err := uc.Execute(ctx, "auth-code")

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.True(t, user.IsApproved)
	assert.Equal(t, "refresh-token", user.RefreshToken)
	mockUsers.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestLoginLaterUsersStartUnapproved(t *testing.T) {
	ctx := context.Background()
	mockUsers, mockIdentity := loginMocks()

	mockUsers.On("FindByGoogleIDOrEmail", ctx, "google-123", "ana@example.com").
		Return(nil, entity.ErrUserNotFound)
	mockUsers.On("Count", ctx).Return(4, nil)
	mockUsers.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLoginUseCase(mockUsers, mockIdentity)

	user, err := uc.Execute(ctx, "auth-code")

	assert.NoError(t, err)
	assert.Equal(t, entity.RoleMember, user.Role)
	assert.False(t, user.IsApproved)
}

func TestLoginExistingUserRefreshesProfile(t *testing.T) {
	ctx := context.Background()
	mockUsers, mockIdentity := loginMocks()

	existing := &entity.User{
		ID:         "user-1",
		GoogleID:   "google-123",
		Name:       "Ana S.",
		Email:      "ana@example.com",
		Role:       entity.RoleMentor,
		IsApproved: true,
	}
	mockUsers.On("FindByGoogleIDOrEmail", ctx, "google-123", "ana@example.com").Return(existing, nil)
	mockUsers.On("UpdateLogin", ctx, mock.Anything).Return(nil)

	uc := usecase.NewLoginUseCase(mockUsers, mockIdentity)

	user, err := uc.Execute(ctx, "auth-code")

	assert.NoError(t, err)
	// Role and approval survive, profile and credential are refreshed.
	assert.Equal(t, entity.RoleMentor, user.Role)
	assert.True(t, user.IsApproved)
	assert.Equal(t, "Ana Souza", user.Name)
	assert.Equal(t, "refresh-token", user.RefreshToken)

	mockUsers.AssertCalled(t, "UpdateLogin", ctx, mock.Anything)
	mockUsers.AssertNotCalled(t, "Create")
}

func TestLoginMissingCode(t *testing.T) {
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockIdentity := new(MockIdentityGateway)

	uc := usecase.NewLoginUseCase(mockUsers, mockIdentity)

	user, err := uc.Execute(ctx, "")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, usecase.IsDomainError(err))
	mockIdentity.AssertNotCalled(t, "ExchangeCode")
}

func TestLoginExchangeFailure(t *testing.T) {
	ctx := context.Background()

	mockUsers := new(MockUserRepository)
	mockIdentity := new(MockIdentityGateway)
	mockIdentity.On("ExchangeCode", mock.Anything, "bad-code").
		Return(nil, errors.New("invalid_grant"))

	uc := usecase.NewLoginUseCase(mockUsers, mockIdentity)

	user, err := uc.Execute(ctx, "bad-code")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, usecase.IsTechnicalError(err))
	mockUsers.AssertNotCalled(t, "Create")
}
