package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ddrozdov/gatehouse-server/internal/keys"
	"github.com/ddrozdov/gatehouse-server/internal/model"
)

func newTestManager(t *testing.T, queryTTL, refreshTTL time.Duration) *JWT {
	t.Helper()
	pair, err := keys.Generate()
	require.NoError(t, err)
	return NewJWT(pair, queryTTL, refreshTTL).(*JWT)
}

func TestJWT_QueryToken_Roundtrip(t *testing.T) {
	j := newTestManager(t, 15*time.Minute, 30*24*time.Hour)
	subject := uuid.New()

	query, err := j.GenerateQueryToken(subject)
	require.NoError(t, err)
	got, err := j.ParseQueryToken(query)
	require.NoError(t, err)
	require.Equal(t, subject, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := newTestManager(t, 15*time.Minute, 30*24*time.Hour)
	subject := uuid.New()

	refresh, err := j.GenerateRefreshToken(subject)
	require.NoError(t, err)
	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, subject, got)
}

func TestJWT_TokenKind_Mismatch(t *testing.T) {
	j := newTestManager(t, 15*time.Minute, 30*24*time.Hour)
	subject := uuid.New()

	query, err := j.GenerateQueryToken(subject)
	require.NoError(t, err)

	_, err = j.ParseRefreshToken(query)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	refresh, err := j.GenerateRefreshToken(subject)
	require.NoError(t, err)

	_, err = j.ParseQueryToken(refresh)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := newTestManager(t, -time.Minute, -time.Minute)
	subject := uuid.New()

	query, err := j.GenerateQueryToken(subject)
	require.NoError(t, err)
	_, err = j.ParseQueryToken(query)
	require.ErrorIs(t, err, model.ErrExpiredToken)

	refresh, err := j.GenerateRefreshToken(subject)
	require.NoError(t, err)
	_, err = j.ParseRefreshToken(refresh)
	require.ErrorIs(t, err, model.ErrExpiredToken)
}

func TestJWT_TamperedSignature(t *testing.T) {
	j := newTestManager(t, 15*time.Minute, 30*24*time.Hour)

	query, err := j.GenerateQueryToken(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(query, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = j.ParseQueryToken(tampered)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_WrongKey(t *testing.T) {
	issuer := newTestManager(t, 15*time.Minute, 30*24*time.Hour)
	verifier := newTestManager(t, 15*time.Minute, 30*24*time.Hour)

	query, err := issuer.GenerateQueryToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ParseQueryToken(query)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Garbage(t *testing.T) {
	j := newTestManager(t, 15*time.Minute, 30*24*time.Hour)

	_, err := j.ParseQueryToken("not.a.token")
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
