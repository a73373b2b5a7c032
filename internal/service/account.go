package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
	"github.com/ddrozdov/gatehouse-server/internal/password"
)

// Account composes the policy gate, the account store, the credential
// service and the access resolver for the externally visible account
// flows.
type Account struct {
	store       model.AccountStore
	policy      *password.Policy
	credentials *Credential
	access      *Access
	logger      *logger.Logger
}

// NewAccount creates a new Account service.
func NewAccount(
	store model.AccountStore,
	policy *password.Policy,
	credentials *Credential,
	access *Access,
	logger *logger.Logger,
) *Account {
	return &Account{
		store:       store,
		policy:      policy,
		credentials: credentials,
		access:      access,
		logger:      logger,
	}
}

// Create registers a new account and issues its first credential pair.
// Either the account and both credentials exist afterwards, or nothing
// does: the insert is the only write, and a signing failure afterwards
// surfaces as a service failure before anything is returned.
func (s *Account) Create(ctx context.Context, email, name, plaintext string) (model.Account, model.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return model.Account{}, model.TokenPair{}, fmt.Errorf("%w: email is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(name) == "" {
		return model.Account{}, model.TokenPair{}, fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	if err := s.policy.Check(plaintext); err != nil {
		s.logger.Info("Account service: password rejected by policy",
			"email", email)
		return model.Account{}, model.TokenPair{}, err
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return model.Account{}, model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := s.store.Create(ctx, account)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			s.logger.Info("Account service: email already taken",
				"email", email)
			return model.Account{}, model.TokenPair{}, err
		}
		return model.Account{}, model.TokenPair{}, fmt.Errorf("failed to create account: %w", err)
	}

	pair, err := s.credentials.IssuePair(ctx, saved.ID)
	if err != nil {
		return model.Account{}, model.TokenPair{}, fmt.Errorf("failed to issue credentials: %w", err)
	}

	s.logger.Info("Account service: account created",
		"account_id", saved.ID,
		"email", saved.Email)

	return saved, pair, nil
}

// Get returns the target account if the actor may access it.
func (s *Account) Get(ctx context.Context, actorID, targetID uuid.UUID) (model.Account, error) {
	resolved, err := s.access.ResolveAccess(ctx, actorID, &targetID)
	if err != nil {
		return model.Account{}, err
	}

	account, err := s.store.GetByID(ctx, resolved)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// Update edits an account. Self-edits are always allowed; editing
// anyone else requires a manage-account grant on the target's scope —
// a read-account grant never authorizes mutation. An email change is
// re-validated against the uniqueness invariant by the store, with the
// same atomic discipline as creation.
func (s *Account) Update(ctx context.Context, actorID, targetID uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	if actorID != targetID {
		if err := s.access.RequireCapability(ctx, actorID, model.AccountScope(targetID), model.CapabilityManageAccount); err != nil {
			return model.Account{}, err
		}
	}

	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return model.Account{}, fmt.Errorf("%w: email is required", model.ErrInvalidInput)
		}
		update.Email = &email
	}

	saved, err := s.store.Update(ctx, targetID, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrDuplicateEmail) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("Account service: account updated",
		"account_id", targetID)

	return saved, nil
}

// Email case-sensitivity policy is fixed at creation time: emails are
// stored and compared lower-cased.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
