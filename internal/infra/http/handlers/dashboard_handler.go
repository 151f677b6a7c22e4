package handlers

import (
	"net/http"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
)

type DashboardHandler struct {
	Dashboard *database.DashboardRepository
}

func NewDashboardHandler(dashboard *database.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

// Members only see stats derived from their own prospects.
func scopeFromClaims(r *http.Request) string {
	claims, _ := middleware.CurrentClaims(r.Context())
	if claims.Role == entity.RoleMember {
		return claims.UserID
	}
	return ""
}

func (h *DashboardHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Daily(r.Context(), scopeFromClaims(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Weekly(r.Context(), scopeFromClaims(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Monthly(r.Context(), scopeFromClaims(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
