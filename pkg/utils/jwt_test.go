package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	SetJWTConfig("test-secret", time.Hour)

	token, err := GenerateJWT("user-1", "ADMIN")
	require.NoError(t, err)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	SetJWTConfig("secret-a", time.Hour)
	token, err := GenerateJWT("user-1", "USER")
	require.NoError(t, err)

	SetJWTConfig("secret-b", time.Hour)
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword("correct horse", string(hash)))
	assert.False(t, CheckPassword("battery staple", string(hash)))
}
