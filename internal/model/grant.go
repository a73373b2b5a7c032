package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// ScopeAll is the reserved wildcard scope. A grant on ScopeAll
	// applies to every account; holders of such grants act as auth
	// admins.
	ScopeAll = "*"

	// CapabilityReadAccount allows resolving and reading accounts
	// within the grant's scope.
	CapabilityReadAccount = "read-account"
	// CapabilityManageAccount allows editing accounts within the
	// grant's scope. Reading never implies it.
	CapabilityManageAccount = "manage-account"
	// CapabilityManagePermissions allows adding and removing grants
	// within the grant's scope.
	CapabilityManagePermissions = "manage-permissions"
)

// AccountScope returns the scope string identifying a single account.
func AccountScope(id uuid.UUID) string {
	return "account:" + id.String()
}

// GrantStore defines persistence operations for permission grants.
type GrantStore interface {
	// Create stores a grant. Re-creating an existing
	// (subject, scope, capability) tuple is a no-op.
	Create(ctx context.Context, grant Grant) error
	// Delete removes a grant. Deleting a missing grant returns
	// ErrNotFound.
	Delete(ctx context.Context, subjectID uuid.UUID, scope, capability string) error
	// ListBySubject returns the subject's grants, optionally filtered
	// to a single scope. An empty scopeFilter returns all grants.
	ListBySubject(ctx context.Context, subjectID uuid.UUID, scopeFilter string) ([]Grant, error)
	// Exists reports whether the subject holds the capability over any
	// of the given scopes.
	Exists(ctx context.Context, subjectID uuid.UUID, scopes []string, capability string) (bool, error)
}

// Grant states that a subject may exercise a capability over a scope.
type Grant struct {
	ID         string
	SubjectID  uuid.UUID
	Scope      string
	Capability string
	CreatedAt  time.Time
}
