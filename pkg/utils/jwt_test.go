package utils

import (
	"testing"
	"time"

	"forum_thread/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withSecret(t *testing.T, secret string) {
	t.Helper()
	prev := config.GlobalConfig.JWT
	config.GlobalConfig.JWT = config.JWTConfig{Secret: secret, Expire: 1}
	t.Cleanup(func() { config.GlobalConfig.JWT = prev })
}

func TestGenerateAndParseToken(t *testing.T) {
	withSecret(t, "0123456789abcdef0123456789abcdef")

	token, expireAt, err := GenerateToken("user-1", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *expireAt, time.Minute)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, 2, claims.Role)
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	withSecret(t, "0123456789abcdef0123456789abcdef")
	token, _, err := GenerateToken("user-1", 1)
	require.NoError(t, err)

	config.GlobalConfig.JWT.Secret = "another-secret-another-secret-xx"
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	withSecret(t, "0123456789abcdef0123456789abcdef")

	claims := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    tokenIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.GlobalConfig.JWT.Secret))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
