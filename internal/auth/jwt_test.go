package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gwi.com/room-redesign/internal/config"
)

func withConfig(t *testing.T, secret string, ttl time.Duration) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig.JWTSecret = secret
	config.AppConfig.TokenTTL = ttl
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestGenerateAndValidate(t *testing.T) {
	withConfig(t, "secret-one", time.Hour)

	token, err := GenerateJWT("jane@example.com")
	require.NoError(t, err)

	sub, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", sub)
}

func TestValidate_WrongSecret(t *testing.T) {
	withConfig(t, "secret-one", time.Hour)
	token, err := GenerateJWT("jane@example.com")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "secret-two"
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	withConfig(t, "secret-one", -time.Minute)

	token, err := GenerateJWT("jane@example.com")
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	withConfig(t, "secret-one", time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x@y.z"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(signed)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	withConfig(t, "secret-one", time.Hour)

	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}
