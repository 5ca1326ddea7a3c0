// Package usecase implements business logic for protected medical writes and
// the metadata read path. The write flow composes the consent gate, the
// tenant data key, and AEAD wrapping: consent is checked before any key
// material is touched.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	medicalDomain "github.com/pitchside/medvault/internal/medical/domain"
)

// CaseRepository defines the interface for Case persistence operations.
type CaseRepository interface {
	Create(ctx context.Context, medicalCase *medicalDomain.Case) error
	GetByID(ctx context.Context, tenantID string, caseID uuid.UUID) (*medicalDomain.Case, error)
	List(ctx context.Context, tenantID string, limit, offset int) ([]*medicalDomain.Case, error)
}

// GDPRRequestRepository defines the interface for GDPRRequest persistence operations.
type GDPRRequestRepository interface {
	Create(ctx context.Context, request *medicalDomain.GDPRRequest) error
}

// CreateCaseInput carries the fields for a protected case creation.
// Details is the sensitive clinical payload: it is JSON-encoded and wrapped
// under the tenant data key, never persisted in plaintext.
type CreateCaseInput struct {
	TenantID    string
	SubjectID   string
	Type        string
	OnsetDate   time.Time
	Severity    string
	BodyArea    string
	IsAvailable bool
	Details     map[string]any
	CreatedBy   string
}

// CreateGDPRRequestInput carries the fields for recording a subject request.
type CreateGDPRRequestInput struct {
	TenantID  string
	SubjectID string
	Type      string
	Details   string
	CreatedBy string
}

// MedicalUseCase defines the interface for medical-record business logic.
type MedicalUseCase interface {
	// CreateCase runs the protected write flow: active treatment consent →
	// tenant data key → wrap details → persist ciphertext plus coarse fields.
	CreateCase(ctx context.Context, input *CreateCaseInput) (*medicalDomain.Case, error)

	// GetCase returns case metadata only; the encrypted payload is never
	// decrypted on the read path.
	GetCase(ctx context.Context, tenantID string, caseID uuid.UUID) (*medicalDomain.Case, error)

	// ListCases returns paginated case metadata for a tenant, newest first.
	ListCases(ctx context.Context, tenantID string, limit, offset int) ([]*medicalDomain.Case, error)

	// CreateGDPRRequest records a data-subject rights request. No consent is
	// required: exercising GDPR rights is its own lawful basis.
	CreateGDPRRequest(ctx context.Context, input *CreateGDPRRequestInput) (*medicalDomain.GDPRRequest, error)
}
