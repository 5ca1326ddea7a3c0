package domain

import (
	"encoding/base64"
	"fmt"
)

// MasterKeySize is the required master key length in bytes (256 bits).
const MasterKeySize = 32

// MasterKey is the process-wide key that wraps every tenant data key.
//
// It sits at the root of the envelope encryption hierarchy: the master key
// wraps per-tenant data keys, and tenant data keys encrypt medical payloads.
// One tenant's compromised data key therefore never exposes another tenant's
// data, and rotating the master key only requires re-wrapping tenant keys,
// not re-encrypting payloads.
//
// The key is loaded once at process start and never mutated. It is
// constructor-injected rather than read from a global so tests can substitute
// a fixture key.
type MasterKey struct {
	key []byte
}

// NewMasterKey creates a MasterKey from raw key material.
// The material must be exactly MasterKeySize bytes; the input slice is copied
// so the caller may zero its own buffer afterwards.
func NewMasterKey(material []byte) (*MasterKey, error) {
	if len(material) != MasterKeySize {
		return nil, fmt.Errorf(
			"%w: master key must be %d bytes, got %d",
			ErrInvalidKeySize,
			MasterKeySize,
			len(material),
		)
	}

	key := make([]byte, MasterKeySize)
	copy(key, material)

	return &MasterKey{key: key}, nil
}

// LoadMasterKey decodes a base64-encoded master key from configuration.
//
// This is the single required secret of the service; callers treat any error
// as fatal at startup so a misconfigured key can never reach request handling.
func LoadMasterKey(encoded string) (*MasterKey, error) {
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	material, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMasterKeyBase64, err)
	}
	defer Zero(material)

	return NewMasterKey(material)
}

// Bytes returns the raw key material. Callers must not modify or retain it
// beyond the scope of a single cryptographic operation.
func (m *MasterKey) Bytes() []byte {
	return m.key
}

// Close zeroes the key material. The MasterKey is unusable afterwards.
func (m *MasterKey) Close() {
	Zero(m.key)
	m.key = nil
}
