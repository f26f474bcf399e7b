package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)

	claims, err := ExtractClaims(token, "access")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.AccountID)
	assert.Equal(t, "farmer", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt, 5*time.Second)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("acct-2", "hq_analyst")
	require.NoError(t, err)

	claims, err := ExtractClaims(token, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "acct-2", claims.AccountID)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), claims.ExpiresAt, 5*time.Second)
}

func TestExtractClaimsRejectsWrongType(t *testing.T) {
	refresh, err := GenerateRefreshToken("acct-3", "farmer")
	require.NoError(t, err)

	_, err = ExtractClaims(refresh, "access")
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestExtractClaimsRejectsGarbage(t *testing.T) {
	_, err := ExtractClaims("not.a.token", "access")
	assert.Error(t, err)
}

func TestHashTokenStableAndDistinct(t *testing.T) {
	a := HashToken("token-a")
	assert.Equal(t, a, HashToken("token-a"))
	assert.NotEqual(t, a, HashToken("token-b"))
	assert.Len(t, a, 64)
}
