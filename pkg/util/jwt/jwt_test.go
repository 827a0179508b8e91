package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	Init("test-secret-test-secret-test-secret", 30, 24)

	token, err := GenerateAccessToken("u-1")
	require.NoError(t, err)

	claims, err := ParseTokenOfType(token, SubjectAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Empty(t, claims.TokenID)

	_, err = ParseTokenOfType(token, SubjectRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	Init("test-secret-test-secret-test-secret", 30, 24)

	token, tokenID, err := GenerateRefreshToken("u-2")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := ParseTokenOfType(token, SubjectRefresh)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.TokenID)
	assert.Equal(t, 24*time.Hour, RefreshTokenExpiry())
}

func TestParseToken_Rejects(t *testing.T) {
	Init("secret-a-secret-a-secret-a-secret-a", 30, 24)
	token, err := GenerateAccessToken("u-1")
	require.NoError(t, err)

	Init("secret-b-secret-b-secret-b-secret-b", 30, 24)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	Init("secret-b-secret-b-secret-b-secret-b", -1, 24)
	expired, err := GenerateAccessToken("u-1")
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
