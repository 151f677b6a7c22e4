package handlers

import (
	"net/http"

	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
	"github.com/nrampal/prospecta/internal/infra/integration/google"
	"github.com/nrampal/prospecta/internal/usecase"
)

type AuthHandler struct {
	LoginUC     *usecase.LoginUseCase
	OAuth       *google.OAuthClient
	Users       *database.UserRepository
	JWTSecret   []byte
	FrontendURL string
}

func NewAuthHandler(loginUC *usecase.LoginUseCase, oauth *google.OAuthClient, users *database.UserRepository, jwtSecret, frontendURL string) *AuthHandler {
	return &AuthHandler{
		LoginUC:     loginUC,
		OAuth:       oauth,
		Users:       users,
		JWTSecret:   []byte(jwtSecret),
		FrontendURL: frontendURL,
	}
}

func (h *AuthHandler) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"url": h.OAuth.AuthURL()})
}

// HandleCallback finishes the OAuth dance and hands the browser back to the
// frontend with a session token.
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	user, err := h.LoginUC.Execute(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role, false, h.JWTSecret)
	if err != nil {
		writeErrorMessage(w, http.StatusInternalServerError, "Failed to issue session token")
		return
	}

	http.Redirect(w, r, h.FrontendURL+"/auth/callback?token="+token, http.StatusFound)
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.CurrentClaims(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.Users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
