package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
)

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := middleware.GenerateToken("user-1", entity.RoleMentor, false, []byte("secret"))
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := middleware.ParseToken(token, []byte("secret"))
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.RoleMentor, claims.Role)
	assert.False(t, claims.Elevated)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _ := middleware.GenerateToken("user-1", entity.RoleMember, false, []byte("secret"))

	_, err := middleware.ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestRequireRejectsMissingToken(t *testing.T) {
	finder := new(MockUserFinder)
	auth := middleware.NewAuthenticator("secret", finder)

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/prospects", nil)
	rec := httptest.NewRecorder()

	auth.Require(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "No token provided")
}

func TestRequireRejectsGarbageToken(t *testing.T) {
	finder := new(MockUserFinder)
	auth := middleware.NewAuthenticator("secret", finder)

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/prospects", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	auth.Require(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireRejectsDeletedUser(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, "user-1").Return(nil, entity.ErrUserNotFound)
	auth := middleware.NewAuthenticator("secret", finder)

	token, _ := middleware.GenerateToken("user-1", entity.RoleMember, false, []byte("secret"))

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/prospects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Require(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, called)
}

func TestRequireRejectsUnapprovedUser(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, "user-1").Return(&entity.User{
		ID:         "user-1",
		Role:       entity.RoleMember,
		IsApproved: false,
	}, nil)
	auth := middleware.NewAuthenticator("secret", finder)

	token, _ := middleware.GenerateToken("user-1", entity.RoleMember, false, []byte("secret"))

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/prospects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Require(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "pending approval")
}

func TestRequireIdentityLetsUnapprovedThrough(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, "user-1").Return(&entity.User{
		ID:         "user-1",
		Role:       entity.RoleMember,
		IsApproved: false,
	}, nil)
	auth := middleware.NewAuthenticator("secret", finder)

	token, _ := middleware.GenerateToken("user-1", entity.RoleMember, false, []byte("secret"))

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.RequireIdentity(okHandler(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAttachesClaims(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, "user-1").Return(&entity.User{
		ID:         "user-1",
		Role:       entity.RoleAdmin,
		IsApproved: true,
	}, nil)
	auth := middleware.NewAuthenticator("secret", finder)

	token, _ := middleware.GenerateToken("user-1", entity.RoleAdmin, true, []byte("secret"))

	var got *middleware.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.CurrentClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/prospects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Require(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.True(t, got.Elevated)
}
