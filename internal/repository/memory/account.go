// Package memory provides in-process implementations of the persistence
// boundaries. They keep the same atomicity discipline as the postgres
// repositories (a single serialization point guards the email index) and
// back unit tests and development mode.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.Account
	byEmail  map[string]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]model.Account),
		byEmail:  make(map[string]uuid.UUID),
	}
}

// Create checks the email index and inserts under one lock, so
// concurrent calls with the same email cannot both observe "absent".
func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	key := emailKey(account.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[key]; taken {
		return model.Account{}, model.ErrDuplicateEmail
	}

	r.accounts[account.ID] = account
	r.byEmail[key] = account.ID

	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}

	return account, nil
}

func (r *AccountRepository) Update(_ context.Context, id uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}

	if update.Email != nil && emailKey(*update.Email) != emailKey(account.Email) {
		key := emailKey(*update.Email)
		if _, taken := r.byEmail[key]; taken {
			return model.Account{}, model.ErrDuplicateEmail
		}
		delete(r.byEmail, emailKey(account.Email))
		r.byEmail[key] = id
		account.Email = *update.Email
	}
	if update.Name != nil {
		account.Name = *update.Name
	}
	if update.PasswordHash != nil {
		account.PasswordHash = *update.PasswordHash
	}
	account.UpdatedAt = time.Now()

	r.accounts[id] = account

	return account, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
