package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nrampal/prospecta/internal/entity"
	"github.com/nrampal/prospecta/internal/usecase"
)

func TestWriteErrorDomainStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", usecase.NewValidationError("name is required"), http.StatusBadRequest},
		{"schedule conflict maps to 400", usecase.NewConflictError("Calendar conflict"), http.StatusBadRequest},
		{"not found", usecase.NewNotFoundError("Prospect not found"), http.StatusNotFound},
		{"forbidden", usecase.NewForbiddenError("Forbidden"), http.StatusForbidden},
		{"sentinel user", entity.ErrUserNotFound, http.StatusNotFound},
		{"sentinel pre-talk", entity.ErrPreTalkNotFound, http.StatusNotFound},
		{"technical", &usecase.TechnicalError{Code: "SYNC_FAILED", Message: "boom"}, http.StatusInternalServerError},
		{"plain error", errors.New("broken pipe"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWriteErrorUsesDomainMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, usecase.NewConflictError("Calendar conflict: Bruno already has a pre-talk"))

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, "Calendar conflict: Bruno already has a pre-talk", body["error"])
}
