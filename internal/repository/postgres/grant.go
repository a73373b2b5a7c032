package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/model"
)

var _ model.GrantStore = (*GrantRepository)(nil)

type GrantRepository struct {
	db DB
}

func NewGrantRepository(db DB) *GrantRepository {
	return &GrantRepository{
		db: db,
	}
}

// Create stores the grant. Re-granting an existing tuple is a no-op via
// ON CONFLICT DO NOTHING against the grants_tuple_unique constraint.
func (r *GrantRepository) Create(ctx context.Context, grant model.Grant) error {
	query := `INSERT INTO grants (id, subject_id, scope, capability, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (subject_id, scope, capability) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		grant.ID, grant.SubjectID, grant.Scope, grant.Capability, grant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create grant: %w", err)
	}

	return nil
}

func (r *GrantRepository) Delete(ctx context.Context, subjectID uuid.UUID, scope, capability string) error {
	query := `DELETE FROM grants WHERE subject_id = $1 AND scope = $2 AND capability = $3`

	tag, err := r.db.Exec(ctx, query, subjectID, scope, capability)
	if err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *GrantRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID, scopeFilter string) ([]model.Grant, error) {
	query := `SELECT id, subject_id, scope, capability, created_at
			  FROM grants
			  WHERE subject_id = $1 AND ($2 = '' OR scope = $2)
			  ORDER BY id`

	rows, err := r.db.Query(ctx, query, subjectID, scopeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	defer rows.Close()

	var grants []model.Grant
	for rows.Next() {
		var g model.Grant
		if err := rows.Scan(&g.ID, &g.SubjectID, &g.Scope, &g.Capability, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grants: %w", err)
	}

	return grants, nil
}

func (r *GrantRepository) Exists(ctx context.Context, subjectID uuid.UUID, scopes []string, capability string) (bool, error) {
	query := `SELECT EXISTS (
			  SELECT 1 FROM grants
			  WHERE subject_id = $1 AND scope = ANY($2) AND capability = $3)`

	var exists bool
	err := r.db.QueryRow(ctx, query, subjectID, scopes, capability).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check grant: %w", err)
	}

	return exists, nil
}
