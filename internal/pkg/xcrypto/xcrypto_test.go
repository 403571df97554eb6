package xcrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipherRoundTrip(t *testing.T) {
	c, err := NewCipher("unit-test-secret")
	require.NoError(t, err)

	token, err := c.Encrypt("ck_live_abc123")
	require.NoError(t, err)
	assert.NotEqual(t, "ck_live_abc123", token)

	plaintext, err := c.Decrypt(token)
	require.NoError(t, err)
	assert.Equal(t, "ck_live_abc123", plaintext)
}

func TestCipherNoncePerEncryption(t *testing.T) {
	c, err := NewCipher("unit-test-secret")
	require.NoError(t, err)

	a, err := c.Encrypt("same input")
	require.NoError(t, err)

	b, err := c.Encrypt("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCipherRejectsTampering(t *testing.T) {
	c, err := NewCipher("unit-test-secret")
	require.NoError(t, err)

	_, err = c.Decrypt("not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = c.Decrypt("c2hvcnQ=")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	other, err := NewCipher("different-secret")
	require.NoError(t, err)

	token, err := other.Encrypt("payload")
	require.NoError(t, err)

	_, err = c.Decrypt(token)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestNewCipherEmptySecret(t *testing.T) {
	_, err := NewCipher("")
	assert.Error(t, err)
}
