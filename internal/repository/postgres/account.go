package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

const pgErrUniqueViolation = "23505"

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Create inserts the account in a single statement. Uniqueness is
// enforced by the accounts_email_unique constraint, so two concurrent
// inserts for the same email can never both succeed.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, email, name, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, email, name, password_hash, created_at, updated_at`

	var saved model.Account
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Email, account.Name, account.PasswordHash,
		account.CreatedAt, account.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Email, &saved.Name, &saved.PasswordHash,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	var account model.Account
	query := `SELECT id, email, name, password_hash, created_at, updated_at
			  FROM accounts WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.Name, &account.PasswordHash,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// Update applies non-nil fields. An email change goes through the same
// unique constraint as insertion, preserving the uniqueness invariant.
func (r *AccountRepository) Update(ctx context.Context, id uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	query := `UPDATE accounts
			  SET email = COALESCE($2, email),
			      name = COALESCE($3, name),
			      password_hash = COALESCE($4, password_hash),
			      updated_at = now()
			  WHERE id = $1
			  RETURNING id, email, name, password_hash, created_at, updated_at`

	var saved model.Account
	err := r.db.QueryRow(ctx, query, id, update.Email, update.Name, update.PasswordHash).Scan(
		&saved.ID, &saved.Email, &saved.Name, &saved.PasswordHash,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrDuplicateEmail
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return saved, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
