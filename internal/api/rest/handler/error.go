package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP statuses and writes a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrWeakPassword):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, model.ErrDuplicateEmail):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, model.ErrExpiredToken),
		errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads the request body into dst, rejecting malformed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}
