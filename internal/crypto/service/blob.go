package service

import (
	"encoding/base64"
	"fmt"
	"strings"

	cryptoDomain "github.com/pitchside/medvault/internal/crypto/domain"
)

// blobVersion is the current wrapped blob format version tag.
const blobVersion = "v1"

// blobSegments is the number of colon-delimited segments in a v1 blob.
const blobSegments = 4

// BlobCipherService implements BlobCipher on top of an AEADManager.
//
// Wrapped blobs are versioned, delimited strings:
//
//	v1:<algorithm>:<base64 nonce>:<base64 ciphertext+tag>
//
// The 16-byte authentication tag is the tail of the ciphertext segment, the
// way AEAD Seal emits it. The version and algorithm labels are bound into the
// AAD, so a blob cannot be re-framed under a different version or algorithm
// without failing verification.
//
// Wrap is pure apart from nonce generation: wrapping the same plaintext twice
// yields different blobs, and a caller whose persistence step fails can
// safely wrap again from the original plaintext.
type BlobCipherService struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewBlobCipher creates a BlobCipherService that wraps with the given
// algorithm. Unwrap accepts any supported algorithm, whatever the blob says.
func NewBlobCipher(aeadManager AEADManager, alg cryptoDomain.Algorithm) *BlobCipherService {
	return &BlobCipherService{
		aeadManager: aeadManager,
		algorithm:   alg,
	}
}

// Wrap encrypts plaintext under a 32-byte key and returns a versioned blob string.
func (b *BlobCipherService) Wrap(key, plaintext []byte) (string, error) {
	aead, err := b.aeadManager.CreateCipher(key, b.algorithm)
	if err != nil {
		return "", err
	}

	ciphertext, nonce, err := aead.Encrypt(plaintext, blobAAD(b.algorithm))
	if err != nil {
		return "", fmt.Errorf("failed to wrap payload: %w", err)
	}

	return strings.Join([]string{
		blobVersion,
		string(b.algorithm),
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, ":"), nil
}

// Unwrap decrypts a blob produced by Wrap with the same key.
//
// Returns ErrUnsupportedFormat for an unknown version or malformed framing,
// and ErrAuthenticationFailure for anything that parses but fails
// verification: corrupted segments, a flipped bit, or the wrong key. The two
// are distinct because an unknown version is an operational problem (old
// binary, new data) while an authentication failure signals tampering.
func (b *BlobCipherService) Unwrap(key []byte, blob string) ([]byte, error) {
	parts := strings.SplitN(blob, ":", blobSegments)
	if len(parts) != blobSegments {
		return nil, cryptoDomain.ErrUnsupportedFormat
	}

	if parts[0] != blobVersion {
		return nil, fmt.Errorf("%w: unknown version %q", cryptoDomain.ErrUnsupportedFormat, parts[0])
	}

	alg, err := cryptoDomain.ParseAlgorithm(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown algorithm %q", cryptoDomain.ErrUnsupportedFormat, parts[1])
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}

	ciphertext, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}

	aead, err := b.aeadManager.CreateCipher(key, alg)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Decrypt(ciphertext, nonce, blobAAD(alg))
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailure
	}

	return plaintext, nil
}

// blobAAD builds the additional authenticated data binding version and algorithm.
func blobAAD(alg cryptoDomain.Algorithm) []byte {
	return []byte(blobVersion + ":" + string(alg))
}
