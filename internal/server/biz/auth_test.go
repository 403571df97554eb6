package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	// bcrypt salts, so hashing twice never collides.
	again, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)

	assert.NoError(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.Error(t, VerifyPassword(hash, "wrong password"))
	assert.Error(t, VerifyPassword("", "anything"))
}

func TestGenerateSecretKey(t *testing.T) {
	key, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, key, 64)

	other, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}
