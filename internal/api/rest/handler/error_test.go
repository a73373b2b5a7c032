package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: model.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "weak password", err: model.ErrWeakPassword, status: http.StatusBadRequest},
		{name: "duplicate email", err: model.ErrDuplicateEmail, status: http.StatusConflict},
		{name: "invalid token", err: model.ErrInvalidToken, status: http.StatusUnauthorized},
		{name: "expired token", err: model.ErrExpiredToken, status: http.StatusUnauthorized},
		{name: "unauthorized", err: model.ErrUnauthorized, status: http.StatusUnauthorized},
		{name: "forbidden", err: model.ErrForbidden, status: http.StatusForbidden},
		{name: "not found", err: model.ErrNotFound, status: http.StatusNotFound},
		{name: "wrapped sentinel", err: errors.Join(errors.New("context"), model.ErrForbidden), status: http.StatusForbidden},
		{name: "unknown error", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("pq: connection refused"))

	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, rec.Body.String(), "internal error")
}
