// Package domain contains the audit trail entities.
//
// Audit logs are append-only: entries are created and listed, never updated
// or deleted. Every attempt against a protected medical resource produces
// exactly one entry, whether the attempt succeeded or was rejected.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Lawful bases under which protected data is touched. Recorded verbatim in
// each audit entry for compliance review.
const (
	LawfulBasisConsent            = "CONSENT"
	LawfulBasisLegitimateInterest = "LEGITIMATE_INTEREST"
	LawfulBasisLegalObligation    = "LEGAL_OBLIGATION"
)

// Actions recorded against protected resources.
const (
	ActionCreate = "CREATE"
	ActionRead   = "READ"
	ActionUnlock = "UNLOCK"
	ActionLock   = "LOCK"
)

// Resource types that appear in audit entries.
const (
	ResourceTypeCase        = "case"
	ResourceTypeConsent     = "consent"
	ResourceTypeGDPRRequest = "gdpr_request"
	ResourceTypeVault       = "vault"
)

// AuditLog records an attempt to act on a protected medical resource.
// Failed attempts are recorded with WasSuccessful false and the rejection
// reason in ErrorMessage.
type AuditLog struct {
	ID            uuid.UUID
	TenantID      string
	UserID        string
	RequestID     string
	ResourceType  string
	ResourceID    string
	Action        string
	Reason        string
	LawfulBasis   string
	IPAddress     string
	WasSuccessful bool
	ErrorMessage  string
	CreatedAt     time.Time
}
