// Package xcrypto provides the symmetric cipher used to keep store
// credentials encrypted at rest.
package xcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

var ErrInvalidCiphertext = errors.New("xcrypto: invalid ciphertext")

// Cipher is an AES-256-GCM cipher with a random nonce per encryption.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives a 256-bit key from the configured secret. The secret
// may be any non-empty string; it is hashed before use so operators are
// not forced to provide exactly 32 bytes.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, errors.New("xcrypto: empty secret")
	}

	key := sha256.Sum256([]byte(secret))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext and returns a base64 token of nonce||ciphertext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(token string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	if len(sealed) < c.aead.NonceSize() {
		return "", ErrInvalidCiphertext
	}

	nonce, ciphertext := sealed[:c.aead.NonceSize()], sealed[c.aead.NonceSize():]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}
