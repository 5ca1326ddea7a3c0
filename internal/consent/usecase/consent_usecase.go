package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	consentDomain "github.com/pitchside/medvault/internal/consent/domain"
	apperrors "github.com/pitchside/medvault/internal/errors"
)

// consentUseCase implements the ConsentUseCase interface.
type consentUseCase struct {
	consentRepo ConsentRepository
}

// Create records a granted consent.
func (u *consentUseCase) Create(
	ctx context.Context,
	input *CreateConsentInput,
) (*consentDomain.Consent, error) {
	if input.SubjectID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "subject is required")
	}
	if input.ConsentType == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "consent type is required")
	}

	now := time.Now().UTC()
	consent := &consentDomain.Consent{
		ID:              uuid.Must(uuid.NewV7()),
		TenantID:        input.TenantID,
		SubjectID:       input.SubjectID,
		ConsentType:     input.ConsentType,
		LawfulBasis:     consentDomain.LawfulBasisConsent,
		Status:          consentDomain.StatusGranted,
		ConsentFormText: input.ConsentFormText,
		GrantedBy:       input.GrantedBy,
		GrantedAt:       now,
		ExpiresAt:       input.ExpiresAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := u.consentRepo.Create(ctx, consent); err != nil {
		return nil, err
	}

	return consent, nil
}

// RequireActive returns nil when a granted, unexpired consent of the given
// type exists for (tenant, subject), and ErrConsentRequired otherwise.
func (u *consentUseCase) RequireActive(
	ctx context.Context,
	tenantID, subjectID, consentType string,
) error {
	active, err := u.consentRepo.HasActive(ctx, tenantID, subjectID, consentType, time.Now().UTC())
	if err != nil {
		return err
	}
	if !active {
		return apperrors.Wrap(apperrors.ErrConsentRequired, "no active "+consentType+" consent for subject")
	}

	return nil
}

// NewConsentUseCase creates a new ConsentUseCase instance.
func NewConsentUseCase(consentRepo ConsentRepository) ConsentUseCase {
	return &consentUseCase{consentRepo: consentRepo}
}
