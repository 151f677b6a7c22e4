package middleware

import (
	"net/http"

	"github.com/nrampal/prospecta/internal/entity"
)

// RequireMentor passes admins and mentors.
func RequireMentor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if claims.Role != entity.RoleAdmin && claims.Role != entity.RoleMentor {
			writeAuthError(w, http.StatusForbidden, "Forbidden: Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin passes admins, or anyone whose credential carries the verified
// elevated flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := CurrentClaims(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if claims.Role != entity.RoleAdmin && !claims.Elevated {
			writeAuthError(w, http.StatusForbidden, "Forbidden: Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
