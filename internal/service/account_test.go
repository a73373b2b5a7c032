package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ddrozdov/gatehouse-server/internal/keys"
	"github.com/ddrozdov/gatehouse-server/internal/mocks"
	"github.com/ddrozdov/gatehouse-server/internal/model"
	"github.com/ddrozdov/gatehouse-server/internal/password"
	"github.com/ddrozdov/gatehouse-server/internal/repository/memory"
	"github.com/ddrozdov/gatehouse-server/internal/testutil"
	"github.com/ddrozdov/gatehouse-server/internal/token"
)

type stubScorer struct{ score int }

func (s stubScorer) Score(string) int { return s.score }

type accountFixture struct {
	service     *Account
	credentials *Credential
	grants      *memory.GrantRepository
}

func newAccountFixture(t *testing.T) accountFixture {
	t.Helper()

	pair, err := keys.Generate()
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	grants := memory.NewGrantRepository()
	credentials := NewCredential(token.NewJWT(pair, 15*time.Minute, 30*24*time.Hour), log)
	access := NewAccess(grants, log)
	policy := password.NewPolicy(stubScorer{score: 4}, password.DefaultMinScore)

	return accountFixture{
		service:     NewAccount(memory.NewAccountRepository(), policy, credentials, access, log),
		credentials: credentials,
		grants:      grants,
	}
}

func TestAccount_Create(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	account, pair, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "example@example.com", account.Email)
	assert.Equal(t, "Example User", account.Name)
	assert.NotEmpty(t, account.PasswordHash)
	require.NotEmpty(t, pair.QueryToken)
	require.NotEmpty(t, pair.RefreshToken)

	subject, err := f.credentials.Verify(ctx, pair.QueryToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, subject)
}

func TestAccount_Create_WeakPassword(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	log := testutil.MakeNoopLogger()
	policy := password.NewPolicy(stubScorer{score: 1}, password.DefaultMinScore)
	store := mocks.NewAccountStore(t)
	service := NewAccount(store, policy, f.credentials, NewAccess(f.grants, log), log)

	_, _, err := service.Create(ctx, "example@example.com", "Example User", "weak")
	require.ErrorIs(t, err, model.ErrWeakPassword)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccount_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	_, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)

	// Repeated attempts keep failing; the rejection is not a one-shot
	// artifact of a check-then-act race.
	for i := 0; i < 2; i++ {
		_, _, err = f.service.Create(ctx, "example@example.com", "Another User", "This is a different secure password")
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	}
}

func TestAccount_Create_EmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	_, _, err := f.service.Create(ctx, "Example@Example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)

	_, _, err = f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAccount_Create_DistinctEmails(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	_, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)
	_, _, err = f.service.Create(ctx, "numba3@yahoo.com", "Example User", "This is a different secure password")
	require.NoError(t, err)

	_, _, err = f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAccount_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	_, _, err := f.service.Create(ctx, "", "Example User", "This is actually a secure password")
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, _, err = f.service.Create(ctx, "example@example.com", "", "This is actually a secure password")
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAccount_Create_UniquenessUnderContention(t *testing.T) {
	const workers = 8

	ctx := context.Background()
	f := newAccountFixture(t)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, _, errs[i] = f.service.Create(ctx, "contended@example.com", "Example User", "This is actually a secure password")
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, model.ErrDuplicateEmail)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAccount_Get_Self(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	account, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)

	got, err := f.service.Get(ctx, account.ID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
}

func TestAccount_Get_ForbiddenForStranger(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	a, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	b, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)

	_, err = f.service.Get(ctx, a.ID, b.ID)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestAccount_Get_AdminOverride(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	admin, _, err := f.service.Create(ctx, "admin@example.com", "Admin User", "This is actually a secure password")
	require.NoError(t, err)
	other, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is a different secure password")
	require.NoError(t, err)

	addGrant(t, f.grants, admin.ID, model.ScopeAll, model.CapabilityReadAccount)

	got, err := f.service.Get(ctx, admin.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)
}

func TestAccount_Update_Name(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	account, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)

	name := "Renamed User"
	updated, err := f.service.Update(ctx, account.ID, account.ID, model.AccountUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestAccount_Update_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	a, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	b, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)

	email := a.Email
	_, err = f.service.Update(ctx, b.ID, b.ID, model.AccountUpdate{Email: &email})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestAccount_Update_ForbiddenForStranger(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	a, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	b, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)

	name := "Hijacked"
	_, err = f.service.Update(ctx, a.ID, b.ID, model.AccountUpdate{Name: &name})
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestAccount_Update_ReadGrantDoesNotPermitMutation(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	victim, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	reader, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)

	addGrant(t, f.grants, reader.ID, model.AccountScope(victim.ID), model.CapabilityReadAccount)

	got, err := f.service.Get(ctx, reader.ID, victim.ID)
	require.NoError(t, err)
	require.Equal(t, victim.ID, got.ID)

	name := "Hijacked"
	_, err = f.service.Update(ctx, reader.ID, victim.ID, model.AccountUpdate{Name: &name})
	require.ErrorIs(t, err, model.ErrForbidden)

	unchanged, err := f.service.Get(ctx, victim.ID, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, "Example User", unchanged.Name)
}

func TestAccount_Update_ManageAccountGrant(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	victim, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	manager, _, err := f.service.Create(ctx, "example2@gmail.com", "Another User", "This is a different secure password")
	require.NoError(t, err)

	addGrant(t, f.grants, manager.ID, model.AccountScope(victim.ID), model.CapabilityManageAccount)

	name := "Renamed User"
	updated, err := f.service.Update(ctx, manager.ID, victim.ID, model.AccountUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestAccount_Update_AdminWildcard(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	victim, _, err := f.service.Create(ctx, "example@example.com", "Example User", "This is actually a secure password")
	require.NoError(t, err)
	admin, _, err := f.service.Create(ctx, "numba3@yahoo.com", "Admin User", "This is a different secure password")
	require.NoError(t, err)

	addGrant(t, f.grants, admin.ID, model.ScopeAll, model.CapabilityManageAccount)

	name := "Renamed User"
	updated, err := f.service.Update(ctx, admin.ID, victim.ID, model.AccountUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}
