package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// AccountService is the account operations surface required by HTTP
// handlers.
type AccountService interface {
	Create(ctx context.Context, email, name, plaintext string) (model.Account, model.TokenPair, error)
	Get(ctx context.Context, actorID, targetID uuid.UUID) (model.Account, error)
	Update(ctx context.Context, actorID, targetID uuid.UUID, update model.AccountUpdate) (model.Account, error)
}

// Account handles account creation and lookup requests.
type Account struct {
	service AccountService
	ctx     model.ContextManager
	logger  *logger.Logger
}

// NewAccount creates a new account handler.
func NewAccount(service AccountService, ctx model.ContextManager, l *logger.Logger) *Account {
	return &Account{
		service: service,
		ctx:     ctx,
		logger:  l,
	}
}

type createAccountRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createAccountResponse struct {
	Account      accountResponse `json:"account"`
	QueryToken   string          `json:"query_token"`
	RefreshToken string          `json:"refresh_token"`
}

// Create registers a new account and returns it with a fresh credential
// pair.
func (h *Account) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	account, pair, err := h.service.Create(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		h.logger.Error("failed to create account", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createAccountResponse{
		Account:      toAccountResponse(account),
		QueryToken:   pair.QueryToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Get returns the account identified by the path ID, subject to the
// caller's access.
func (h *Account) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrInvalidInput)
		return
	}

	account, err := h.service.Get(r.Context(), actorID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

type updateAccountRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Update applies a partial update to the account identified by the path
// ID.
func (h *Account) Update(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.ctx.SubjectID(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, model.ErrInvalidInput)
		return
	}

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	account, err := h.service.Update(r.Context(), actorID, targetID, model.AccountUpdate{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func toAccountResponse(account model.Account) accountResponse {
	return accountResponse{
		ID:    account.ID.String(),
		Email: account.Email,
		Name:  account.Name,
	}
}
