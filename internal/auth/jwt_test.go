package auth

import (
	"testing"
	"time"

	"nibash_backend/internal/config"
	"nibash_backend/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T, secret string, ttlHours int) {
	t.Helper()
	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTLHours = ttlHours
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(t, "test-secret-key", 24)

	token, err := GenerateToken("user-123", "user@test.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "nibash", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Expired(t *testing.T) {
	setTestConfig(t, "test-secret-key", 24)

	now := time.Now().Add(-48 * time.Hour)
	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestParseToken_NotYetValid(t *testing.T) {
	setTestConfig(t, "test-secret-key", 24)

	future := time.Now().Add(time.Hour)
	claims := &Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(future.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(future),
			NotBefore: jwt.NewNumericDate(future),
			Issuer:    issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotYetValid)
}

func TestParseToken_Malformed(t *testing.T) {
	setTestConfig(t, "test-secret-key", 24)

	_, err := ParseToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t, "test-secret-key", 24)
	token, err := GenerateToken("user-123", "user@test.com", "customer")
	require.NoError(t, err)

	setTestConfig(t, "a-different-secret", 24)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenMalformed)
}
