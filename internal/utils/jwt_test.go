package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, tokenID, err := GenerateAccessToken("user-1", "a@fasomarket.bf", "vendeur", "boutique-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@fasomarket.bf", claims.Email)
	assert.Equal(t, "vendeur", claims.Role)
	assert.Equal(t, "boutique-1", claims.BoutiqueID)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestParseAccessTokenMauvaisSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, _, err := GenerateAccessToken("user-1", "a@fasomarket.bf", "client", "")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	_, err = ParseAccessToken(token)
	assert.Error(t, err)
}

func TestGenerateRefreshTokenOpaque(t *testing.T) {
	t1, err := GenerateRefreshToken()
	require.NoError(t, err)
	t2, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
	assert.GreaterOrEqual(t, len(t1), 32)
}

func TestGetTokenExpirationDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, _, err := GenerateAccessToken("user-1", "a@fasomarket.bf", "client", "")
	require.NoError(t, err)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)

	d := GetTokenExpirationDuration(claims)
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, AccessTokenDuration)
}
