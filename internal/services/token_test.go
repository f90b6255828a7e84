package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*24*time.Hour)
	id := uuid.New()

	raw, err := issuer.Issue(id)
	require.NoError(t, err)

	got, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenClaims(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return now }

	raw, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)
	assert.EqualValues(t, now.Unix(), claims["iat"])
	assert.EqualValues(t, now.Add(time.Hour).Unix(), claims["exp"])
}

func TestTokenRejectsOtherSecret(t *testing.T) {
	raw, err := NewTokenIssuer("one", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = NewTokenIssuer("two", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	now := time.Now()
	issuer.now = func() time.Time { return now }

	raw, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
