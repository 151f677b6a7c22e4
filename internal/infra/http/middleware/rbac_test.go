package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
)

// runGate pushes a request through the authenticator so the role gate under
// test sees real claims in the context.
func runGate(t *testing.T, gate func(http.Handler) http.Handler, role string, elevated bool) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	finder := new(MockUserFinder)
	finder.On("FindByID", mock.Anything, "user-1").Return(&entity.User{
		ID:         "user-1",
		Role:       role,
		IsApproved: true,
	}, nil)
	auth := middleware.NewAuthenticator("secret", finder)

	token, err := middleware.GenerateToken("user-1", role, elevated, []byte("secret"))
	assert.NoError(t, err)

	called := false
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	auth.Require(gate(okHandler(&called))).ServeHTTP(rec, req)
	return rec, called
}

func TestRequireMentorAllowsMentorsAndAdmins(t *testing.T) {
	for _, role := range []string{entity.RoleMentor, entity.RoleAdmin} {
		rec, called := runGate(t, middleware.RequireMentor, role, false)
		assert.Equal(t, http.StatusOK, rec.Code, "role %s", role)
		assert.True(t, called, "role %s", role)
	}
}

func TestRequireMentorRejectsMembers(t *testing.T) {
	rec, called := runGate(t, middleware.RequireMentor, entity.RoleMember, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")
}

func TestRequireAdminRejectsMentors(t *testing.T) {
	rec, called := runGate(t, middleware.RequireAdmin, entity.RoleMentor, false)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "Admin access required")
}

func TestRequireAdminAllowsElevatedCredential(t *testing.T) {
	rec, called := runGate(t, middleware.RequireAdmin, entity.RoleMember, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
