// Package domain defines the entities for protected medical records.
//
// Sensitive case detail exists in plaintext only transiently before it is
// wrapped under the tenant data key. At rest a case carries ciphertext plus
// coarse, irreversible derived fields only: raw-storage access alone cannot
// reconstruct medical detail without the tenant key.
package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/pitchside/medvault/internal/errors"
)

// Case statuses.
const (
	CaseStatusOpen   = "OPEN"
	CaseStatusClosed = "CLOSED"
)

// caseNumberAlphabet is the character set for pseudonymous case numbers.
const caseNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// caseNumberLength is the random suffix length after the "MC-" prefix.
const caseNumberLength = 6

// bodyAreaHashLength is the hex-char length kept from the body-area digest.
const bodyAreaHashLength = 16

// Case represents a medical case. The clinical detail lives encrypted in
// EncryptedPayload; the remaining columns are pseudonymous or coarse by
// construction. Cases are never hard-deleted.
type Case struct {
	ID               uuid.UUID
	TenantID         string
	SubjectID        string
	CaseNumber       string
	Type             string
	Status           string
	OnsetDate        time.Time
	IsAvailable      bool
	EncryptedPayload string
	KeyVersion       string
	BodyAreaHash     string
	SeverityBucket   string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCaseNumber generates a pseudonymous case number of the form
// MC-XXXXXX (uppercase alphanumeric) from a cryptographic random source.
func NewCaseNumber() (string, error) {
	buf := make([]byte, caseNumberLength)
	if _, err := rand.Read(buf); err != nil {
		return "", apperrors.Wrap(err, "failed to generate case number")
	}

	suffix := make([]byte, caseNumberLength)
	for i, b := range buf {
		suffix[i] = caseNumberAlphabet[int(b)%len(caseNumberAlphabet)]
	}

	return "MC-" + string(suffix), nil
}

// HashBodyArea returns a one-way digest of a free-text body-area value:
// the first 16 hex chars of its SHA-256. Empty input stays empty.
func HashBodyArea(area string) string {
	if area == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(area))
	return hex.EncodeToString(sum[:])[:bodyAreaHashLength]
}

// DataKeyVersion is the key-version label recorded with each encrypted
// payload, identifying which tenant key generation wrapped it.
func DataKeyVersion(tenantID string) string {
	return tenantID + "_v1"
}
