package domain

import (
	"github.com/pitchside/medvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrMasterKeyNotSet indicates the master key secret is absent from
	// configuration. Fatal at startup.
	ErrMasterKeyNotSet = errors.New("master key not set")

	// ErrInvalidMasterKeyBase64 indicates the configured master key is not
	// valid base64. Fatal at startup.
	ErrInvalidMasterKeyBase64 = errors.New("master key is not valid base64")

	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	// Supported algorithms: AESGCM (AES-256-GCM), ChaCha20 (ChaCha20-Poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a cryptographic key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedFormat indicates a wrapped blob carries an unknown version
	// tag or does not parse as a wrapped blob at all.
	ErrUnsupportedFormat = errors.Wrap(errors.ErrInvalidInput, "unsupported blob format")

	// ErrAuthenticationFailure indicates AEAD tag verification failed on
	// unwrap: the blob was tampered with, corrupted, or unwrapped with the
	// wrong key. The specific cause is deliberately not disclosed.
	//
	// This error signals possible tampering and must be logged loudly by
	// callers, never silently downgraded.
	ErrAuthenticationFailure = errors.New("authentication failure")

	// ErrKeyCorruption indicates an unwrapped tenant data key did not have
	// the expected 32-byte length. The vault row is damaged.
	ErrKeyCorruption = errors.New("tenant data key corrupted")
)
