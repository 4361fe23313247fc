package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")

	token, err := GenerateAccessToken("507f1f77bcf86cd799439011", "jane")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "jane", claims.Username)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")

	token, err := GenerateRefreshToken("507f1f77bcf86cd799439011", "jane")
	require.NoError(t, err)

	claims, err := VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
}

func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "test-refresh-secret")

	token, err := GenerateAccessToken("507f1f77bcf86cd799439011", "jane")
	require.NoError(t, err)

	_, err = VerifyRefreshToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_SECRET", "test-admin-secret")

	token, err := GenerateAdminToken("507f191e810c19729de860ea", "root")
	require.NoError(t, err)

	claims, err := VerifyAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f191e810c19729de860ea", claims.AdminID)
	assert.Equal(t, "root", claims.Username)
}

func TestUserTokenRejectedAsAdminToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")
	t.Setenv("ADMIN_TOKEN_SECRET", "test-admin-secret")

	token, err := GenerateAccessToken("507f1f77bcf86cd799439011", "jane")
	require.NoError(t, err)

	_, err = VerifyAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-access-secret")

	_, err := VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
