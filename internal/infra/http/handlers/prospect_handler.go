package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
)

type ProspectHandler struct {
	Prospects *database.ProspectRepository
	PreTalks  *database.PreTalkRepository
	Logs      *database.ActivityLogRepository
}

func NewProspectHandler(
	prospects *database.ProspectRepository,
	preTalks *database.PreTalkRepository,
	logs *database.ActivityLogRepository,
) *ProspectHandler {
	return &ProspectHandler{Prospects: prospects, PreTalks: preTalks, Logs: logs}
}

type createProspectRequest struct {
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Age              *int    `json:"age"`
	City             string  `json:"city"`
	Profession       string  `json:"profession"`
	Source           string  `json:"source"`
	AssignedMentorID *string `json:"assigned_mentor_id"`
	Notes            string  `json:"notes"`
}

func (h *ProspectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	var req createProspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Source == "" {
		writeErrorMessage(w, http.StatusBadRequest, "Source is required")
		return
	}

	prospect := &entity.Prospect{
		Name:             req.Name,
		Phone:            req.Phone,
		Email:            req.Email,
		Age:              req.Age,
		City:             req.City,
		Profession:       req.Profession,
		Source:           req.Source,
		AssignedMentorID: req.AssignedMentorID,
		Notes:            req.Notes,
		CreatedBy:        claims.UserID,
	}
	if err := h.Prospects.Create(r.Context(), prospect); err != nil {
		writeError(w, err)
		return
	}

	h.appendLog(r, claims.UserID, &prospect.ID, entity.ActionProspectCreated,
		map[string]any{"prospect_name": prospect.Name})

	writeJSON(w, http.StatusCreated, prospect)
}

func (h *ProspectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	q := r.URL.Query()
	filter := database.ProspectFilter{
		Status:         q.Get("status"),
		AssignedMentor: q.Get("assigned_mentor"),
		StartDate:      q.Get("start_date"),
		EndDate:        q.Get("end_date"),
	}
	// Members only see their own prospects.
	if claims.Role == entity.RoleMember {
		filter.CreatedBy = claims.UserID
	} else {
		filter.CreatedBy = q.Get("created_by")
	}

	prospects, err := h.Prospects.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

type prospectDetail struct {
	*entity.Prospect
	ActivityLogs []entity.ActivityLog `json:"activity_logs"`
	PreTalks     []entity.PreTalk     `json:"pre_talks"`
}

func (h *ProspectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())
	id := chi.URLParam(r, "id")

	prospect, err := h.Prospects.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if claims.Role == entity.RoleMember && prospect.CreatedBy != claims.UserID {
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	logs, err := h.Logs.ListByProspect(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	preTalks, err := h.PreTalks.ListByProspect(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prospectDetail{
		Prospect:     prospect,
		ActivityLogs: logs,
		PreTalks:     preTalks,
	})
}

func (h *ProspectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())
	id := chi.URLParam(r, "id")

	existing, err := h.Prospects.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if claims.Role == entity.RoleMember && existing.CreatedBy != claims.UserID {
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	var patch database.ProspectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if patch.Status != nil && !entity.IsValidProspectStatus(*patch.Status) {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("Invalid status: %s", *patch.Status))
		return
	}
	if patch.IsEmpty() {
		writeJSON(w, http.StatusOK, existing)
		return
	}

	updated, err := h.Prospects.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	h.appendLog(r, claims.UserID, &id, entity.ActionProspectUpdated,
		map[string]any{"changes": patch})

	writeJSON(w, http.StatusOK, updated)
}

func (h *ProspectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())
	id := chi.URLParam(r, "id")

	existing, err := h.Prospects.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if claims.Role == entity.RoleMember && existing.CreatedBy != claims.UserID {
		writeErrorMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	if err := h.Prospects.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	// The prospect row is gone, so the log keeps only the name in meta.
	h.appendLog(r, claims.UserID, nil, entity.ActionProspectDeleted,
		map[string]any{"prospect_name": existing.Name})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *ProspectHandler) appendLog(r *http.Request, userID string, prospectID *string, action string, meta map[string]any) {
	raw, err := json.Marshal(meta)
	if err != nil {
		raw = []byte("{}")
	}
	entry := &entity.ActivityLog{
		UserID:     userID,
		ProspectID: prospectID,
		Action:     action,
		Meta:       raw,
	}
	if err := h.Logs.Append(r.Context(), entry); err != nil {
		log.Printf("⚠️ Failed to append %s activity log: %v", action, err)
	}
}
