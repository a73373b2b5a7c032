package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// PermissionService manages the grant registry.
type PermissionService interface {
	Grant(ctx context.Context, actorID, subjectID uuid.UUID, scope, capability string) error
	Revoke(ctx context.Context, actorID, subjectID uuid.UUID, scope, capability string) error
	List(ctx context.Context, actorID uuid.UUID, scopeFilter string) ([]model.Grant, error)
}

// Permission handles grant registry requests.
type Permission struct {
	service PermissionService
	ctx     model.ContextManager
	logger  *logger.Logger
}

// NewPermission creates a new permission handler.
func NewPermission(service PermissionService, ctx model.ContextManager, l *logger.Logger) *Permission {
	return &Permission{
		service: service,
		ctx:     ctx,
		logger:  l,
	}
}

type grantRequest struct {
	SubjectID  string `json:"subject_id"`
	Scope      string `json:"scope"`
	Capability string `json:"capability"`
}

type grantResponse struct {
	ID         string `json:"id"`
	SubjectID  string `json:"subject_id"`
	Scope      string `json:"scope"`
	Capability string `json:"capability"`
}

// Grant records a capability grant for a subject.
func (h *Permission) Grant(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req grantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		writeError(w, model.ErrInvalidInput)
		return
	}

	if err := h.service.Grant(r.Context(), actorID, subjectID, req.Scope, req.Capability); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Revoke removes a capability grant.
func (h *Permission) Revoke(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var req grantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		writeError(w, model.ErrInvalidInput)
		return
	}

	if err := h.service.Revoke(r.Context(), actorID, subjectID, req.Scope, req.Capability); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns the caller's own grants, optionally filtered by scope.
func (h *Permission) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	grants, err := h.service.List(r.Context(), actorID, r.URL.Query().Get("scope"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]grantResponse, 0, len(grants))
	for _, g := range grants {
		resp = append(resp, grantResponse{
			ID:         g.ID,
			SubjectID:  g.SubjectID.String(),
			Scope:      g.Scope,
			Capability: g.Capability,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
