// Package usecase implements business logic for GDPR consent management.
// The consent gate runs before any key material is touched on protected
// write paths.
package usecase

import (
	"context"
	"time"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
)

// ConsentRepository defines the interface for Consent persistence operations.
type ConsentRepository interface {
	Create(ctx context.Context, consent *consentDomain.Consent) error
	HasActive(ctx context.Context, tenantID, subjectID, consentType string, now time.Time) (bool, error)
}

// CreateConsentInput carries the fields for recording a new consent.
type CreateConsentInput struct {
	TenantID        string
	SubjectID       string
	ConsentType     string
	ConsentFormText string
	GrantedBy       string
	ExpiresAt       *time.Time
}

// ConsentUseCase defines the interface for consent business logic.
type ConsentUseCase interface {
	// Create records a granted consent.
	Create(ctx context.Context, input *CreateConsentInput) (*consentDomain.Consent, error)

	// RequireActive returns nil when a granted, unexpired consent of the
	// given type exists, and ErrConsentRequired otherwise.
	RequireActive(ctx context.Context, tenantID, subjectID, consentType string) error
}
