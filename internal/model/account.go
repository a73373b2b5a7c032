package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
//
// Create and Update must enforce email uniqueness atomically: under
// concurrent calls with the same email exactly one may succeed, the
// rest fail with ErrDuplicateEmail. A check-then-insert sequence is
// not an acceptable implementation.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Update(ctx context.Context, id uuid.UUID, update AccountUpdate) (Account, error)
}

// Account represents a stored user identity.
type Account struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountUpdate holds optional field changes for an account. Nil fields
// are left untouched.
type AccountUpdate struct {
	Email        *string
	Name         *string
	PasswordHash *string
}
