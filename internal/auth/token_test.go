package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePairAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := manager.IssuePair("admin", true)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := manager.Verify(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.True(t, claims.Admin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	claims, err = manager.Verify(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestVerify_WrongTokenType(t *testing.T) {
	manager := NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := manager.IssuePair("admin", true)
	require.NoError(t, err)

	_, err = manager.Verify(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)
	other := NewTokenManager("another-secret", 15*time.Minute, 24*time.Hour)

	pair, err := manager.IssuePair("admin", true)
	require.NoError(t, err)

	_, err = other.Verify(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute, -time.Minute)

	pair, err := manager.IssuePair("admin", true)
	require.NoError(t, err)

	_, err = manager.Verify(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 15*time.Minute, 24*time.Hour)

	_, err := manager.Verify("not-a-jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword("s3cret-pass", hash))
	assert.Error(t, CheckPassword("wrong", hash))
}
