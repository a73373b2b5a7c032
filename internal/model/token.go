package model

import "github.com/google/uuid"

// TokenManager generates and validates query/refresh credentials.
// Parse methods return ErrExpiredToken for credentials past their
// expiry and ErrInvalidToken for any other validation failure.
type TokenManager interface {
	GenerateQueryToken(subjectID uuid.UUID) (string, error)
	GenerateRefreshToken(subjectID uuid.UUID) (string, error)
	ParseQueryToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// TokenPair holds the credentials issued for a subject.
type TokenPair struct {
	QueryToken   string
	RefreshToken string
}
