package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager stores and retrieves the authenticated subject in a
// request context.
type ContextManager interface {
	SetSubjectID(ctx context.Context, subjectID uuid.UUID) context.Context
	SubjectID(ctx context.Context) (uuid.UUID, bool)
}
