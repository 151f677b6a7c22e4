package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nrampal/prospecta/internal/entity"
)

// Claims is the session credential payload: who, what role, and whether the
// admin-equivalent bypass was verified at issue time.
type Claims struct {
	UserID   string `json:"uid"`
	Role     string `json:"role"`
	Elevated bool   `json:"elevated"`
	jwt.RegisteredClaims
}

const tokenValidity = 7 * 24 * time.Hour

func GenerateToken(userID, role string, elevated bool, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   userID,
		Role:     role,
		Elevated: elevated,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token.SignedString(secret)
}

func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

type contextKey string

const claimsKey contextKey = "auth_claims"

// CurrentClaims returns the verified session claims attached by the
// authenticator.
func CurrentClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// Authenticator is the access-control gate: it verifies the bearer
// credential, confirms the user still exists, and (outside identity routes)
// enforces the approval flag.
type Authenticator struct {
	Secret []byte
	Users  UserFinder
}

func NewAuthenticator(secret string, users UserFinder) *Authenticator {
	return &Authenticator{Secret: []byte(secret), Users: users}
}

// Require authenticates and rejects unapproved accounts.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return a.authenticate(next, true)
}

// RequireIdentity authenticates but lets unapproved accounts through; used
// only on identity routes so a pending user can still see who they are.
func (a *Authenticator) RequireIdentity(next http.Handler) http.Handler {
	return a.authenticate(next, false)
}

func (a *Authenticator) authenticate(next http.Handler, enforceApproval bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "No token provided")
			return
		}

		claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), a.Secret)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		user, err := a.Users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, entity.ErrUserNotFound) {
				writeAuthError(w, http.StatusNotFound, "User not found")
				return
			}
			writeAuthError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}

		if enforceApproval && !user.IsApproved {
			writeAuthError(w, http.StatusForbidden, "Account pending approval")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
