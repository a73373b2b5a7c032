package token

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ddrozdov/gatehouse-server/internal/keys"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

// Claims represents JWT claims with token kind and subject ID.
type Claims struct {
	jwt.RegisteredClaims
	SubjectID uuid.UUID `json:"subject_id"`
	TokenKind string    `json:"kind"`
}

const (
	kindQuery   = "query"
	kindRefresh = "refresh"
)

// JWT implements TokenManager using EdDSA signatures. Anyone holding
// the public key can verify a credential without contacting the
// service; only the holder of the private key can mint one.
type JWT struct {
	private    ed25519.PrivateKey
	public     ed25519.PublicKey
	queryTTL   time.Duration
	refreshTTL time.Duration
}

// NewJWT creates a token manager signing with the given key pair.
func NewJWT(pair *keys.Pair, queryTTL, refreshTTL time.Duration) model.TokenManager {
	return &JWT{
		private:    pair.Private,
		public:     pair.Public,
		queryTTL:   queryTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateQueryToken creates a short-lived query token.
func (j *JWT) GenerateQueryToken(subjectID uuid.UUID) (string, error) {
	tokenString, err := j.generate(subjectID, kindQuery, j.queryTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign query token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token.
func (j *JWT) GenerateRefreshToken(subjectID uuid.UUID) (string, error) {
	tokenString, err := j.generate(subjectID, kindRefresh, j.refreshTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

func (j *JWT) generate(subjectID uuid.UUID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SubjectID: subjectID,
		TokenKind: kind,
	})

	return token.SignedString(j.private)
}

// ParseQueryToken validates and extracts the subject ID from a query token.
func (j *JWT) ParseQueryToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, kindQuery)
}

// ParseRefreshToken validates and extracts the subject ID from a refresh token.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, kindRefresh)
}

func (j *JWT) parse(tokenString, kind string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.public, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, model.ErrExpiredToken
		}
		return uuid.Nil, model.ErrInvalidToken
	}
	if !token.Valid {
		return uuid.Nil, model.ErrInvalidToken
	}
	if claims.TokenKind != kind {
		return uuid.Nil, model.ErrInvalidToken
	}
	if claims.SubjectID == uuid.Nil {
		return uuid.Nil, model.ErrInvalidToken
	}
	return claims.SubjectID, nil
}
