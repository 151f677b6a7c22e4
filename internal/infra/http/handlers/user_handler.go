package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
)

type UserHandler struct {
	Users *database.UserRepository
}

func NewUserHandler(users *database.UserRepository) *UserHandler {
	return &UserHandler{Users: users}
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListApproved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListPending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.Users.ListMentors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mentors)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Role != entity.RoleAdmin && req.Role != entity.RoleMentor && req.Role != entity.RoleMember {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.Users.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
