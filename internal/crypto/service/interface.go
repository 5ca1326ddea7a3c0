// Package service provides cryptographic services for the medical vault.
// Implements AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305) and the versioned
// wrapped-blob encoding used for tenant data keys and medical payloads.
package service

import (
	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// BlobCipher wraps and unwraps byte payloads as versioned, self-describing
// blob strings safe to store in a text column.
type BlobCipher interface {
	// Wrap encrypts plaintext under a 32-byte key and returns a versioned blob.
	Wrap(key, plaintext []byte) (string, error)

	// Unwrap decrypts a blob produced by Wrap with the same key.
	Unwrap(key []byte, blob string) ([]byte, error)
}
