package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/errors"
)

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name           string
		accessSecret   string
		refreshSecret  string
		accessMinutes  int
		refreshMinutes int
	}{
		{
			name:           "valid parameters",
			accessSecret:   "access-secret-key",
			refreshSecret:  "refresh-secret-key",
			accessMinutes:  15,
			refreshMinutes: 10080,
		},
		{
			name:           "empty secrets",
			accessSecret:   "",
			refreshSecret:  "",
			accessMinutes:  30,
			refreshMinutes: 2880,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService(tt.accessSecret, tt.refreshSecret, tt.accessMinutes, tt.refreshMinutes)

			assert.NotNil(t, ts)
			assert.Equal(t, tt.accessSecret, ts.AccessTokenSecret)
			assert.Equal(t, tt.refreshSecret, ts.RefreshTokenSecret)
			assert.Equal(t, time.Duration(tt.accessMinutes)*time.Minute, ts.AccessTokenExpiry)
			assert.Equal(t, time.Duration(tt.refreshMinutes)*time.Minute, ts.RefreshTokenExpiry)
		})
	}
}

func TestTokenService_IssuePair(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 10080)

	pair, err := ts.IssuePair("user-123", "test@example.com", "user")
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := ts.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", accessClaims.UserID)
	assert.Equal(t, "test@example.com", accessClaims.Email)
	assert.Equal(t, "user", accessClaims.Role)
	assert.Equal(t, TokenTypeAccess, accessClaims.TokenType)

	refreshClaims, err := ts.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refreshClaims.UserID)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)

	// Each class is signed with its own secret.
	_, err = jwt.Parse(pair.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("refresh-secret"), nil
	})
	assert.Error(t, err)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", -1, -1)

	pair, err := ts.IssuePair("user-123", "test@example.com", "user")
	require.NoError(t, err)

	_, err = ts.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)

	// Expired wins over any other classification for a well-formed token.
	_, err = ts.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, autherror.ErrTokenExpired)
}

func TestTokenService_Verify_WrongType(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 10080)

	pair, err := ts.IssuePair("user-123", "test@example.com", "user")
	require.NoError(t, err)

	// A validly-signed access token at the refresh verifier is a type
	// mismatch, not a signature failure.
	_, err = ts.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, autherror.ErrWrongTokenType)
	assert.NotErrorIs(t, err, autherror.ErrTokenMalformed)

	_, err = ts.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, autherror.ErrWrongTokenType)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 10080)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered signature", token: func() string {
			pair, err := ts.IssuePair("user-123", "test@example.com", "user")
			require.NoError(t, err)
			return pair.AccessToken + "x"
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.VerifyAccess(tt.token)
			assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
		})
	}

	// A token signed with the wrong secret is tampered, not wrong-type.
	other := NewTokenService("other-access", "other-refresh", 15, 10080)
	pair, err := other.IssuePair("user-123", "test@example.com", "user")
	require.NoError(t, err)

	_, err = ts.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
}

func TestTokenService_Rotate(t *testing.T) {
	ts := NewTokenService("access-secret", "refresh-secret", 15, 10080)

	t.Run("missing input", func(t *testing.T) {
		for _, input := range []string{"", "   "} {
			_, err := ts.Rotate(input)
			assert.ErrorIs(t, err, autherror.ErrMissingToken)
		}
	})

	t.Run("replaces both tokens", func(t *testing.T) {
		pair, err := ts.IssuePair("user-123", "test@example.com", "admin")
		require.NoError(t, err)

		rotated, err := ts.Rotate(pair.RefreshToken)
		require.NoError(t, err)
		require.NotNil(t, rotated)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEmpty(t, rotated.RefreshToken)

		claims, err := ts.VerifyRefresh(rotated.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		pair, err := ts.IssuePair("user-123", "test@example.com", "user")
		require.NoError(t, err)

		_, err = ts.Rotate(pair.AccessToken)
		assert.ErrorIs(t, err, autherror.ErrWrongTokenType)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ts.Rotate("not-a-token")
		assert.ErrorIs(t, err, autherror.ErrTokenMalformed)
	})
}
