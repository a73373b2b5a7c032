package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/ids"
	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// Permission manages the grant registry. Mutations require the actor to
// already hold manage-permissions over the target scope, so a subject
// can never escalate their own rights without a pre-existing admin
// grant.
type Permission struct {
	grants model.GrantStore
	access *Access
	logger *logger.Logger
}

// NewPermission creates a new Permission service.
func NewPermission(grants model.GrantStore, access *Access, logger *logger.Logger) *Permission {
	return &Permission{grants: grants, access: access, logger: logger}
}

// Grant adds a grant for the subject. Re-adding an existing grant is a
// no-op.
func (s *Permission) Grant(ctx context.Context, actorID, subjectID uuid.UUID, scope, capability string) error {
	if err := validateGrantInput(scope, capability); err != nil {
		return err
	}
	if err := s.access.RequireCapability(ctx, actorID, scope, model.CapabilityManagePermissions); err != nil {
		return err
	}

	grant := model.Grant{
		ID:         ids.New(),
		SubjectID:  subjectID,
		Scope:      scope,
		Capability: capability,
		CreatedAt:  time.Now(),
	}
	if err := s.grants.Create(ctx, grant); err != nil {
		return fmt.Errorf("failed to create grant: %w", err)
	}

	s.logger.Info("Permission service: grant added",
		"actor_id", actorID,
		"subject_id", subjectID,
		"scope", scope,
		"capability", capability)

	return nil
}

// Revoke removes a grant from the subject.
func (s *Permission) Revoke(ctx context.Context, actorID, subjectID uuid.UUID, scope, capability string) error {
	if err := validateGrantInput(scope, capability); err != nil {
		return err
	}
	if err := s.access.RequireCapability(ctx, actorID, scope, model.CapabilityManagePermissions); err != nil {
		return err
	}

	if err := s.grants.Delete(ctx, subjectID, scope, capability); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	s.logger.Info("Permission service: grant revoked",
		"actor_id", actorID,
		"subject_id", subjectID,
		"scope", scope,
		"capability", capability)

	return nil
}

// List returns the actor's own grants, optionally filtered by scope.
func (s *Permission) List(ctx context.Context, actorID uuid.UUID, scopeFilter string) ([]model.Grant, error) {
	grants, err := s.grants.ListBySubject(ctx, actorID, scopeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return grants, nil
}

// EnsureAdmin seeds the wildcard grants making the subject an auth
// admin. Used at startup to bootstrap the first admin; idempotent.
func (s *Permission) EnsureAdmin(ctx context.Context, subjectID uuid.UUID) error {
	for _, capability := range []string{model.CapabilityManagePermissions, model.CapabilityReadAccount, model.CapabilityManageAccount} {
		grant := model.Grant{
			ID:         ids.New(),
			SubjectID:  subjectID,
			Scope:      model.ScopeAll,
			Capability: capability,
			CreatedAt:  time.Now(),
		}
		if err := s.grants.Create(ctx, grant); err != nil {
			return fmt.Errorf("failed to seed admin grant: %w", err)
		}
	}

	s.logger.Info("Permission service: admin grants ensured",
		"subject_id", subjectID)

	return nil
}

func validateGrantInput(scope, capability string) error {
	if strings.TrimSpace(scope) == "" {
		return fmt.Errorf("%w: scope is required", model.ErrInvalidInput)
	}
	if strings.TrimSpace(capability) == "" {
		return fmt.Errorf("%w: capability is required", model.ErrInvalidInput)
	}
	return nil
}
