package domain

import (
	"time"

	"github.com/google/uuid"
)

// GDPR request types.
const (
	GDPRTypeAccess        = "ACCESS"
	GDPRTypeErasure       = "ERASURE"
	GDPRTypePortability   = "PORTABILITY"
	GDPRTypeRectification = "RECTIFICATION"
)

// GDPRRequestStatusReceived is the initial status of every subject request.
const GDPRRequestStatusReceived = "RECEIVED"

// GDPRRequest records a data-subject rights request. Creating one is a
// protected write, but it needs no consent: exercising GDPR rights is its
// own lawful basis.
type GDPRRequest struct {
	ID        uuid.UUID
	TenantID  string
	SubjectID string
	Type      string
	Status    string
	Details   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
