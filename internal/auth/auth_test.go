package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash, "hash must not be the plaintext")

	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)

	// bcrypt salts per call; both must still verify
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("same", first))
	assert.True(t, CheckPassword("same", second))
}

func TestGenerateSessionToken(t *testing.T) {
	first, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, first, 64, "expected 32 random bytes hex-encoded")

	second, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSignAndVerifySessionToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateSessionToken()
	require.NoError(t, err)

	signed, err := SignSessionToken(token, secret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, token, signed)

	got, err := VerifySessionToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestVerifySessionTokenWrongSecret(t *testing.T) {
	signed, err := SignSessionToken("token", []byte("right"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = VerifySessionToken(signed, []byte("wrong"))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestVerifySessionTokenExpired(t *testing.T) {
	signed, err := SignSessionToken("token", []byte("secret"), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = VerifySessionToken(signed, []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestVerifySessionTokenGarbage(t *testing.T) {
	_, err := VerifySessionToken("not-a-jwt", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidCookie)

	_, err = VerifySessionToken("", []byte("secret"))
	assert.Error(t, err)
}
