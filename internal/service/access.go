package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// Access decides whether a verified subject may act on a target
// account. Credentials that fail verification never reach this service.
type Access struct {
	grants model.GrantStore
	logger *logger.Logger
}

// NewAccess creates a new Access resolver.
func NewAccess(grants model.GrantStore, logger *logger.Logger) *Access {
	return &Access{grants: grants, logger: logger}
}

// ResolveAccess applies the access policy in order: no target means the
// caller asks for their own identity; self-access is always allowed;
// anything else requires a read-account grant on the target's scope or
// the admin wildcard. Returns ErrForbidden otherwise.
func (s *Access) ResolveAccess(ctx context.Context, subjectID uuid.UUID, targetID *uuid.UUID) (uuid.UUID, error) {
	if targetID == nil {
		return subjectID, nil
	}
	if *targetID == subjectID {
		return subjectID, nil
	}

	scopes := []string{model.AccountScope(*targetID), model.ScopeAll}
	allowed, err := s.grants.Exists(ctx, subjectID, scopes, model.CapabilityReadAccount)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check read-account grant: %w", err)
	}
	if !allowed {
		s.logger.Info("Access service: resolution denied",
			"subject_id", subjectID,
			"target_id", *targetID)
		return uuid.Nil, model.ErrForbidden
	}

	return *targetID, nil
}

// RequireCapability returns ErrForbidden unless the actor holds the
// capability over the scope, directly or via the admin wildcard.
func (s *Access) RequireCapability(ctx context.Context, actorID uuid.UUID, scope, capability string) error {
	scopes := []string{scope}
	if scope != model.ScopeAll {
		scopes = append(scopes, model.ScopeAll)
	}

	allowed, err := s.grants.Exists(ctx, actorID, scopes, capability)
	if err != nil {
		return fmt.Errorf("failed to check %s grant: %w", capability, err)
	}
	if !allowed {
		s.logger.Info("Access service: capability denied",
			"actor_id", actorID,
			"scope", scope,
			"capability", capability)
		return model.ErrForbidden
	}

	return nil
}
