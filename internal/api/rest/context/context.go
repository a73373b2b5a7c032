package context

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

// subjectIDKey is the context key holding the authenticated subject ID.
const subjectIDKey ctxKey = iota

// Manager stores and retrieves the authenticated subject ID in request
// contexts.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetSubjectID returns a context carrying the subject ID.
func (m *Manager) SetSubjectID(ctx context.Context, subjectID uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectIDKey, subjectID)
}

// SubjectID retrieves the subject ID set by the authentication
// middleware, reporting whether one was present.
func (m *Manager) SubjectID(ctx context.Context) (uuid.UUID, bool) {
	subjectID, ok := ctx.Value(subjectIDKey).(uuid.UUID)
	if !ok || subjectID == uuid.Nil {
		return uuid.Nil, false
	}
	return subjectID, true
}
