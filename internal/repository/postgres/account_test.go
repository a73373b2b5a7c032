package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestAccountRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	account := model.Account{
		ID:           uuid.New(),
		Email:        "example@example.com",
		Name:         "Example User",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(account.ID, account.Email, account.Name, account.PasswordHash, account.CreatedAt, account.UpdatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
			AddRow(account.ID, account.Email, account.Name, account.PasswordHash, now, now))

	repo := NewAccountRepository(mock)
	saved, err := repo.Create(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, account.ID, saved.ID)
	assert.Equal(t, account.Email, saved.Email)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "accounts_email_unique"})

	repo := NewAccountRepository(mock)
	_, err = repo.Create(context.Background(), model.Account{ID: uuid.New(), Email: "example@example.com"})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, email, name, password_hash`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}))

	repo := NewAccountRepository(mock)
	_, err = repo.GetByID(context.Background(), id)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_EmailConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	email := "taken@example.com"
	mock.ExpectQuery(`UPDATE accounts`).
		WithArgs(id, &email, (*string)(nil), (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	repo := NewAccountRepository(mock)
	_, err = repo.Update(context.Background(), id, model.AccountUpdate{Email: &email})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NameOnly(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	name := "Renamed User"
	now := time.Now()
	mock.ExpectQuery(`UPDATE accounts`).
		WithArgs(id, (*string)(nil), &name, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
			AddRow(id, "example@example.com", name, "hash", now, now))

	repo := NewAccountRepository(mock)
	saved, err := repo.Update(context.Background(), id, model.AccountUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, saved.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}
