// Package domain defines the entities for GDPR consent management.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a consent record.
type Status string

// Consent statuses.
const (
	StatusGranted Status = "GRANTED"
	StatusRevoked Status = "REVOKED"
	StatusExpired Status = "EXPIRED"
)

// Consent types recognized by the protected write paths.
const (
	TypeTreatment      = "treatment"
	TypeDataProcessing = "data_processing"
)

// LawfulBasisConsent is the GDPR lawful basis recorded for consent-backed
// processing.
const LawfulBasisConsent = "consent"

// Consent represents a subject's consent to a specific kind of processing
// within a tenant. Consent records are never hard-deleted; revocation and
// expiry are state transitions.
type Consent struct {
	ID              uuid.UUID
	TenantID        string
	SubjectID       string
	ConsentType     string
	LawfulBasis     string
	Status          Status
	ConsentFormText string
	GrantedBy       string
	GrantedAt       time.Time
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the consent authorizes processing at the given
// instant: granted, not revoked, and not past its expiry.
func (c *Consent) Active(now time.Time) bool {
	if c.Status != StatusGranted {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}
