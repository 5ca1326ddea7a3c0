package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChaCha20Poly1305(t *testing.T) {
	t.Run("valid 256-bit key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		cipher, err := NewChaCha20Poly1305(key)
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("key too short", func(t *testing.T) {
		cipher, err := NewChaCha20Poly1305(make([]byte, 16))
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})

	t.Run("key too long", func(t *testing.T) {
		cipher, err := NewChaCha20Poly1305(make([]byte, 64))
		assert.Error(t, err)
		assert.Nil(t, cipher)
	})
}

func TestChaCha20Poly1305Cipher_Encrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)

	t.Run("encrypt with plaintext and AAD", func(t *testing.T) {
		plaintext := []byte(`{"description":"grade II sprain","treatment":"rest"}`)
		aad := []byte("v1:chacha20-poly1305")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		assert.NoError(t, err)
		assert.NotNil(t, ciphertext)
		assert.NotEqual(t, plaintext, ciphertext)
		assert.Equal(t, 12, len(nonce))
	})

	t.Run("encrypt without AAD", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("details"), nil)
		assert.NoError(t, err)
		assert.NotNil(t, ciphertext)
		assert.NotNil(t, nonce)
	})

	t.Run("encrypt empty plaintext", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte(""), []byte("aad"))
		assert.NoError(t, err)
		assert.NotNil(t, ciphertext)
		assert.NotNil(t, nonce)
	})

	t.Run("nonce is unique for each encryption", func(t *testing.T) {
		plaintext := []byte("same payload twice")
		aad := []byte("aad")

		ct1, nonce1, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)
		ct2, nonce2, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)

		assert.NotEqual(t, nonce1, nonce2)
		assert.NotEqual(t, ct1, ct2)
	})
}

func TestChaCha20Poly1305Cipher_Decrypt(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte(`{"body_area":"knee","severity":"moderate"}`)
		aad := []byte("v1:chacha20-poly1305")

		ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, aad)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("wrong AAD fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("payload"), []byte("v1:chacha20-poly1305"))
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, []byte("v1:aes-gcm"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("wrong nonce fails", func(t *testing.T) {
		ciphertext, _, err := cipher.Encrypt([]byte("payload"), []byte("aad"))
		require.NoError(t, err)

		wrongNonce := make([]byte, 12)
		_, err = rand.Read(wrongNonce)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(ciphertext, wrongNonce, []byte("aad"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("tampered ciphertext fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("payload"), []byte("aad"))
		require.NoError(t, err)

		ciphertext[0] ^= 1

		decrypted, err := cipher.Decrypt(ciphertext, nonce, []byte("aad"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})

	t.Run("wrong key fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("payload"), []byte("aad"))
		require.NoError(t, err)

		otherKey := make([]byte, 32)
		_, err = rand.Read(otherKey)
		require.NoError(t, err)
		otherCipher, err := NewChaCha20Poly1305(otherKey)
		require.NoError(t, err)

		decrypted, err := otherCipher.Decrypt(ciphertext, nonce, []byte("aad"))
		assert.Error(t, err)
		assert.Nil(t, decrypted)
	})
}

func TestChaCha20Poly1305Cipher_RoundTripVariants(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)

	testCases := []struct {
		name      string
		plaintext []byte
		aad       []byte
	}{
		{
			name:      "short payload",
			plaintext: []byte("rest"),
			aad:       []byte("label"),
		},
		{
			name:      "large payload",
			plaintext: bytes.Repeat([]byte("clinical note "), 1000),
			aad:       []byte("label"),
		},
		{
			name:      "unicode payload",
			plaintext: []byte("distorsione del ginocchio 膝の捻挫 🔐"),
			aad:       []byte("label"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ciphertext, nonce, err := cipher.Encrypt(tc.plaintext, tc.aad)
			require.NoError(t, err)

			decrypted, err := cipher.Decrypt(ciphertext, nonce, tc.aad)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tc.plaintext, decrypted))
		})
	}
}
