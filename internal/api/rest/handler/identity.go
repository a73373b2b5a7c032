package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// AccessService resolves which account a caller may act on.
type AccessService interface {
	ResolveAccess(ctx context.Context, subjectID uuid.UUID, targetID *uuid.UUID) (uuid.UUID, error)
}

// CredentialService mints and refreshes signed credentials.
type CredentialService interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Identity handles identity resolution and credential refresh requests.
type Identity struct {
	access      AccessService
	credentials CredentialService
	ctx         model.ContextManager
	logger      *logger.Logger
}

// NewIdentity creates a new identity handler.
func NewIdentity(access AccessService, credentials CredentialService, ctx model.ContextManager, l *logger.Logger) *Identity {
	return &Identity{
		access:      access,
		credentials: credentials,
		ctx:         ctx,
		logger:      l,
	}
}

type identityResponse struct {
	ID string `json:"id"`
}

// Resolve returns the account ID the caller is acting on: its own when
// no id parameter is given, the requested one when access allows it.
func (h *Identity) Resolve(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var targetID *uuid.UUID
	if raw := r.URL.Query().Get("id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, model.ErrInvalidInput)
			return
		}
		targetID = &parsed
	}

	resolved, err := h.access.ResolveAccess(r.Context(), subjectID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identityResponse{ID: resolved.String()})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	QueryToken string `json:"query_token"`
}

// Refresh exchanges a valid refresh token for a new query token.
func (h *Identity) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.RefreshToken == "" {
		writeError(w, model.ErrInvalidToken)
		return
	}

	queryToken, err := h.credentials.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{QueryToken: queryToken})
}
