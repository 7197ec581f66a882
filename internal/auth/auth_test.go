package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Invalid(t *testing.T) {
	t.Parallel()

	_, err := HashPassword("")
	assert.Error(t, err)

	_, err = HashPassword(strings.Repeat("a", maxPasswordLength+1))
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := VerifyPassword("not-a-hash", "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	keyHex, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "cardvault-server", claims.Issuer)
	assert.NotEmpty(t, claims.TokenID)
}

func TestTokenService_RejectsExpired(t *testing.T) {
	t.Parallel()

	keyHex, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	t.Parallel()

	keyHex, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(keyHex, time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken("v4.local.nonsense")
	assert.Error(t, err)
}

func TestNewTokenService_BadKey(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("too-short", time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey_Stable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, first, keyHexSize)

	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
