package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

var _ model.GrantStore = (*GrantRepository)(nil)

type grantKey struct {
	subjectID  uuid.UUID
	scope      string
	capability string
}

type GrantRepository struct {
	mu     sync.RWMutex
	grants map[grantKey]model.Grant
}

func NewGrantRepository() *GrantRepository {
	return &GrantRepository{
		grants: make(map[grantKey]model.Grant),
	}
}

func (r *GrantRepository) Create(_ context.Context, grant model.Grant) error {
	key := grantKey{subjectID: grant.SubjectID, scope: grant.Scope, capability: grant.Capability}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.grants[key]; exists {
		return nil
	}
	r.grants[key] = grant

	return nil
}

func (r *GrantRepository) Delete(_ context.Context, subjectID uuid.UUID, scope, capability string) error {
	key := grantKey{subjectID: subjectID, scope: scope, capability: capability}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.grants[key]; !exists {
		return model.ErrNotFound
	}
	delete(r.grants, key)

	return nil
}

func (r *GrantRepository) ListBySubject(_ context.Context, subjectID uuid.UUID, scopeFilter string) ([]model.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var grants []model.Grant
	for key, grant := range r.grants {
		if key.subjectID != subjectID {
			continue
		}
		if scopeFilter != "" && key.scope != scopeFilter {
			continue
		}
		grants = append(grants, grant)
	}
	sort.Slice(grants, func(i, j int) bool { return grants[i].ID < grants[j].ID })

	return grants, nil
}

func (r *GrantRepository) Exists(_ context.Context, subjectID uuid.UUID, scopes []string, capability string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, scope := range scopes {
		key := grantKey{subjectID: subjectID, scope: scope, capability: capability}
		if _, ok := r.grants[key]; ok {
			return true, nil
		}
	}

	return false, nil
}
