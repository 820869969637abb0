package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Digest("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", digest)

	again, err := h.Digest("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "digests must be salted")

	assert.True(t, h.Verify(digest, "secret1"))
	assert.False(t, h.Verify(digest, "wrong"))
	assert.False(t, h.Verify("not-a-digest", "secret1"))
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultBcryptCost, NewBcryptHasher(99).cost)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateSessionToken("sid-123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", claims.SessionID)
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	token, err := NewJWTService("other-secret", time.Hour).GenerateSessionToken("sid")
	require.NoError(t, err)
	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(token)
	assert.Error(t, err)

	expired, err := NewJWTService("test-secret", -time.Minute).GenerateSessionToken("sid")
	require.NoError(t, err)
	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(expired)
	assert.Error(t, err)
}
