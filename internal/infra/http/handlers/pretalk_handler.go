package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nrampal/prospecta/internal/infra/database"
	"github.com/nrampal/prospecta/internal/infra/http/middleware"
	"github.com/nrampal/prospecta/internal/usecase"
)

type PreTalkHandler struct {
	ScheduleUC *usecase.SchedulePreTalkUseCase
	UpdateUC   *usecase.UpdatePreTalkUseCase
	CompleteUC *usecase.CompletePreTalkUseCase
	PreTalks   *database.PreTalkRepository
}

func NewPreTalkHandler(
	scheduleUC *usecase.SchedulePreTalkUseCase,
	updateUC *usecase.UpdatePreTalkUseCase,
	completeUC *usecase.CompletePreTalkUseCase,
	preTalks *database.PreTalkRepository,
) *PreTalkHandler {
	return &PreTalkHandler{
		ScheduleUC: scheduleUC,
		UpdateUC:   updateUC,
		CompleteUC: completeUC,
		PreTalks:   preTalks,
	}
}

func (h *PreTalkHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	var input usecase.SchedulePreTalkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	preTalk, err := h.ScheduleUC.Execute(r.Context(), claims.UserID, input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == usecase.CodeScheduleConflict {
			middleware.RecordScheduleConflict()
		}
		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) && techErr.Code == "SCHEDULING_FAILED" {
			middleware.RecordIntegrationError("calendar")
		}
		writeError(w, err)
		return
	}

	middleware.RecordPreTalkScheduled()
	writeJSON(w, http.StatusCreated, preTalk)
}

func (h *PreTalkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.PreTalkFilter{
		ProspectID: q.Get("prospect_id"),
		MentorID:   q.Get("mentor_id"),
		Status:     q.Get("status"),
	}

	preTalks, err := h.PreTalks.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preTalks)
}

func (h *PreTalkHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	preTalk, err := h.PreTalks.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preTalk)
}

func (h *PreTalkHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	var input usecase.UpdatePreTalkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	preTalk, err := h.UpdateUC.Execute(r.Context(), claims.UserID, chi.URLParam(r, "id"), input)
	if err != nil {
		var techErr *usecase.TechnicalError
		if errors.As(err, &techErr) && techErr.Code == "CALENDAR_UPDATE_FAILED" {
			middleware.RecordIntegrationError("calendar")
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preTalk)
}

func (h *PreTalkHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	claims, _ := middleware.CurrentClaims(r.Context())

	var input usecase.CompletePreTalkInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	preTalk, err := h.CompleteUC.Execute(r.Context(), claims.UserID, chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preTalk)
}
