package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps the domain error taxonomy onto HTTP statuses. A schedule
// conflict reports as 400, not 409.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeErrorMessage(w, domainStatus(domainErr.Code), domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, entity.ErrUserNotFound):
		writeErrorMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, entity.ErrMentorNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Mentor not found")
	case errors.Is(err, entity.ErrProspectNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Prospect not found")
	case errors.Is(err, entity.ErrPreTalkNotFound):
		writeErrorMessage(w, http.StatusNotFound, "Pre-talk not found")
	default:
		writeErrorMessage(w, http.StatusInternalServerError, err.Error())
	}
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeValidation, usecase.CodeScheduleConflict:
		return http.StatusBadRequest
	case usecase.CodeUnauthorized:
		return http.StatusUnauthorized
	case usecase.CodeForbidden:
		return http.StatusForbidden
	case usecase.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
