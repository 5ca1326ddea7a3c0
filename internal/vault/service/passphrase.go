// Package service provides the passphrase hashing service for the vault gate.
// Uses Argon2id, a memory-hard algorithm: the cost of a verify call is an
// accepted latency-for-security trade-off on the unlock path, not an oversight.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/pitchside/medvault/internal/errors"
)

// saltSize is the random salt length in bytes.
const saltSize = 16

// PassphraseService hashes and verifies vault passphrases.
type PassphraseService interface {
	// GenerateSalt returns a fresh random salt, base64-encoded.
	GenerateSalt() (string, error)

	// Hash hashes "passphrase:salt" with Argon2id.
	Hash(passphrase, salt string) (string, error)

	// Verify reports whether passphrase+salt matches the stored hash.
	// A mismatch is a false return, never an error: the caller must not be
	// able to distinguish failure causes (avoids a timing/error oracle).
	Verify(passphrase, salt, hash string) bool
}

// passphraseService implements PassphraseService using Argon2id.
type passphraseService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPassphraseService creates a PassphraseService with the Moderate Argon2id
// policy, balancing unlock latency against brute-force cost.
func NewPassphraseService() PassphraseService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passphraseService{
		hasher: hasher,
	}
}

// GenerateSalt returns a fresh random salt, base64-encoded.
func (s *passphraseService) GenerateSalt() (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", apperrors.Wrap(err, "failed to generate salt")
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Hash hashes "passphrase:salt" with Argon2id.
func (s *passphraseService) Hash(passphrase, salt string) (string, error) {
	hash, err := s.hasher.Hash([]byte(passphrase + ":" + salt))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash passphrase")
	}
	return hash, nil
}

// Verify performs a constant-time comparison of passphrase+salt against the hash.
func (s *passphraseService) Verify(passphrase, salt, hash string) bool {
	ok, err := s.hasher.Verify([]byte(passphrase+":"+salt), hash)
	if err != nil {
		return false
	}
	return ok
}
