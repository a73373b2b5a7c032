package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/logger"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// Credential issues and verifies signed, time-bounded credentials.
// Verification is stateless: validity is decided entirely by the
// signature and the embedded expiry, no store is consulted.
type Credential struct {
	manager model.TokenManager
	logger  *logger.Logger
}

// NewCredential creates a new Credential service.
func NewCredential(manager model.TokenManager, logger *logger.Logger) *Credential {
	return &Credential{manager: manager, logger: logger}
}

// IssuePair mints a query and a refresh credential bound to the subject.
func (s *Credential) IssuePair(_ context.Context, subjectID uuid.UUID) (model.TokenPair, error) {
	query, err := s.manager.GenerateQueryToken(subjectID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue query token: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(subjectID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.logger.Debug("Credential service: issued token pair",
		"subject_id", subjectID)

	return model.TokenPair{QueryToken: query, RefreshToken: refresh}, nil
}

// Verify checks a query credential and returns the bound subject ID.
func (s *Credential) Verify(_ context.Context, queryToken string) (uuid.UUID, error) {
	subjectID, err := s.manager.ParseQueryToken(queryToken)
	if err != nil {
		return uuid.Nil, err
	}
	return subjectID, nil
}

// Refresh verifies the refresh credential and mints a new query
// credential for the same subject. The refresh credential itself is
// neither extended nor reissued.
func (s *Credential) Refresh(_ context.Context, refreshToken string) (string, error) {
	subjectID, err := s.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	query, err := s.manager.GenerateQueryToken(subjectID)
	if err != nil {
		return "", fmt.Errorf("failed to issue query token: %w", err)
	}

	s.logger.Debug("Credential service: refreshed query token",
		"subject_id", subjectID)

	return query, nil
}
